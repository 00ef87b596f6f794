package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/pricetrack/internal/domain"
)

// FetchResult is the outcome of a successful products fetch.
// Empty is set when the backend answered 204 No Content.
type FetchResult struct {
	Products []domain.TrackedProduct
	Empty    bool
}

// TrackingService reads and deletes the user's price tracking requests
type TrackingService struct {
	api     domain.TrackingAPI
	session *SessionService
	logger  *slog.Logger
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(api domain.TrackingAPI, session *SessionService, logger *slog.Logger) *TrackingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackingService{
		api:     api,
		session: session,
		logger:  logger,
	}
}

// FetchProducts returns the tracked products for the stored session.
// Returns domain.ErrNoSession when the session is missing or partial.
func (s *TrackingService) FetchProducts(ctx context.Context) (FetchResult, error) {
	if !s.session.IsAuthenticated() {
		return FetchResult{}, domain.ErrNoSession
	}
	token, _ := s.session.AccessToken()

	products, empty, err := s.api.MyRequests(ctx, token)
	if err != nil {
		return FetchResult{}, err
	}

	s.logger.Debug("fetched products", "count", len(products), "empty", empty)
	return FetchResult{Products: products, Empty: empty}, nil
}

// Delete removes one request. Returns domain.ErrNoSession without an access
// token and domain.ErrUnauthorized when the backend rejects it.
func (s *TrackingService) Delete(ctx context.Context, id int64) error {
	token, ok := s.session.AccessToken()
	if !ok {
		return domain.ErrNoSession
	}

	if err := s.api.DeleteRequest(ctx, token, id); err != nil {
		return err
	}

	s.logger.Info("deleted price tracking request", "id", id)
	return nil
}

// Match ranks products whose name or number fuzzily contains query.
// Best matches first; ties keep their original order.
func Match(query string, products []domain.TrackedProduct) []domain.TrackedProduct {
	if query == "" {
		return products
	}

	// Candidate strings: name and number for each product
	targets := make([]string, 0, len(products)*2)
	owners := make([]int, 0, len(products)*2)
	for i, p := range products {
		targets = append(targets, p.DisplayName(), p.ProductNumber)
		owners = append(owners, i, i)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)

	seen := make(map[int]bool)
	var out []domain.TrackedProduct
	for _, r := range ranks {
		idx := owners[r.OriginalIndex]
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, products[idx])
	}
	return out
}
