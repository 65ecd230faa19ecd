package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

var _ orders.StockNotifier = (*HTTPStockNotifier)(nil)

// HTTPStockNotifier publica cambios de existencia al sincronizador de
// e-commerce con un POST JSON. Fire-and-forget: se despacha en una goroutine,
// los fallos se registran y el reintento es responsabilidad del sincronizador.
type HTTPStockNotifier struct {
	url    string
	token  string
	client *http.Client
	log    *logger.Logger
}

// NewHTTPStockNotifier construye el notificador. URL vacía lo deja inerte.
func NewHTTPStockNotifier(url, token string, log *logger.Logger) *HTTPStockNotifier {
	return &HTTPStockNotifier{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Publish envía los cambios sin bloquear al caller.
func (n *HTTPStockNotifier) Publish(changes []orders.StockChange) {
	if n.url == "" || len(changes) == 0 {
		return
	}
	go n.send(changes)
}

func (n *HTTPStockNotifier) send(changes []orders.StockChange) {
	body, err := json.Marshal(map[string]any{"changes": changes})
	if err != nil {
		n.log.Error().Err(err).Msg("serializar cambios de stock")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.Error().Err(err).Msg("construir request de sincronización")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn().Err(err).Int("changes", len(changes)).Msg("sincronización de stock falló")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.log.Warn().Int("status", resp.StatusCode).Int("changes", len(changes)).Msg("sincronizador rechazó los cambios")
		return
	}
	n.log.Debug().Int("changes", len(changes)).Msg("cambios de stock sincronizados")
}
