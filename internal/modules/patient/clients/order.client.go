package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/infrastructure/discovery"
	"soins-suite-services/internal/modules/patient/dto"
)

// ServiceResolver résout un nom de service en URL de base
type ServiceResolver interface {
	Resolve(ctx context.Context, serviceName string) (string, error)
}

// OrderClient appels HTTP vers le service commande
type OrderClient struct {
	resolver    ServiceResolver
	serviceName string
	httpClient  *http.Client
}

func NewOrderClient(cfg *config.Config, registry *discovery.Registry) *OrderClient {
	return NewOrderClientWithResolver(registry, cfg.Clients.OrderServiceName, &http.Client{
		Timeout: cfg.Clients.Timeout,
	})
}

func NewOrderClientWithResolver(resolver ServiceResolver, serviceName string, httpClient *http.Client) *OrderClient {
	return &OrderClient{
		resolver:    resolver,
		serviceName: serviceName,
		httpClient:  httpClient,
	}
}

// FindOrders GET /orders?patientIds=<csv>&patientState=<state>
func (c *OrderClient) FindOrders(ctx context.Context, patientIDs []string, state string) ([]dto.Order, error) {
	baseURL, err := c.resolver.Resolve(ctx, c.serviceName)
	if err != nil {
		return nil, fmt.Errorf("résolution %s échouée: %w", c.serviceName, err)
	}

	query := url.Values{}
	query.Set("patientIds", strings.Join(patientIDs, ","))
	if state != "" {
		query.Set("patientState", state)
	}
	endpoint := fmt.Sprintf("%s/orders?%s", strings.TrimRight(baseURL, "/"), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("construction requête échouée: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("appel %s échoué: %w", c.serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s a répondu %d: %s", c.serviceName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var orders []dto.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("réponse %s illisible: %w", c.serviceName, err)
	}
	return orders, nil
}
