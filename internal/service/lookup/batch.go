package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/parser"
)

// MaxBatchItems caps the number of items in one BatchLookup call.
const MaxBatchItems = 100

// Item is one (word, language) pair of a batch.
type Item struct {
	Word string `json:"word"`
	Lang string `json:"lang"`
}

func (it Item) key() Item {
	return Item{Word: domain.NormalizeWord(it.Word), Lang: strings.ToLower(strings.TrimSpace(it.Lang))}
}

// ItemResult is the outcome for one batch item. Exactly one of Result and
// Err is set.
type ItemResult struct {
	Item   Item
	Result *parser.Result
	Err    error
}

// BatchLookup looks up every item. Duplicate items are looked up once, and
// at most Options.BatchConcurrency lookups run at a time. A failing item
// does not fail the batch.
func (s *Service) BatchLookup(ctx context.Context, items []Item) ([]ItemResult, error) {
	if len(items) == 0 {
		return []ItemResult{}, nil
	}
	if len(items) > MaxBatchItems {
		return nil, domain.NewValidationError("items", fmt.Sprintf("at most %d items allowed", MaxBatchItems))
	}

	loader := dataloader.NewBatchedLoader(
		s.batchFn(),
		dataloader.WithWait[Item, *parser.Result](s.opts.BatchWait),
		dataloader.WithBatchCapacity[Item, *parser.Result](s.opts.BatchCapacity),
	)

	thunks := make([]dataloader.Thunk[*parser.Result], len(items))
	for i, it := range items {
		thunks[i] = loader.Load(ctx, it.key())
	}

	out := make([]ItemResult, len(items))
	for i, thunk := range thunks {
		res, err := thunk()
		out[i] = ItemResult{Item: items[i], Result: res, Err: err}
	}
	return out, nil
}

func (s *Service) batchFn() dataloader.BatchFunc[Item, *parser.Result] {
	return func(ctx context.Context, keys []Item) []*dataloader.Result[*parser.Result] {
		results := make([]*dataloader.Result[*parser.Result], len(keys))

		var g errgroup.Group
		g.SetLimit(s.opts.BatchConcurrency)
		for i, k := range keys {
			g.Go(func() error {
				res, err := s.Lookup(ctx, k.Word, k.Lang)
				results[i] = &dataloader.Result[*parser.Result]{Data: res, Error: err}
				return nil
			})
		}
		_ = g.Wait()

		return results
	}
}
