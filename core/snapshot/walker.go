package snapshot

import (
	"context"
	"fmt"
	"iter"

	"musicbridge/core/bridge"
	"musicbridge/logger"
)

// Extractor produces the snapshot of one collection member.
type Extractor func(ctx context.Context, obj bridge.Object) (Document, error)

// Walk lazily extracts members in bridge order, yielding one result per
// member. Extraction stops early if the consumer stops ranging.
func Walk(ctx context.Context, members []bridge.Object, extract Extractor) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		for i, m := range members {
			doc, err := extract(ctx, m)
			if err != nil {
				err = fmt.Errorf("member %d: %w", i, err)
			}
			if !yield(doc, err) {
				return
			}
		}
	}
}

// Collect keeps the successes of seq in order. The result is never nil so
// an empty collection encodes as [].
func Collect(seq iter.Seq2[Document, error]) []Document {
	docs := make([]Document, 0)
	for doc, err := range seq {
		if err != nil {
			logger.Debug("collection member skipped", logger.ErrorField(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// walk is Walk+Collect with the engine's progress hook attached when top is
// set.
func (e *Engine) walk(ctx context.Context, members []bridge.Object, extract Extractor, top bool) []Document {
	if top && e.progress != nil {
		total, done := len(members), 0
		inner := extract
		extract = func(ctx context.Context, obj bridge.Object) (Document, error) {
			doc, err := inner(ctx, obj)
			done++
			e.progress(done, total)
			return doc, err
		}
	}
	return Collect(Walk(ctx, members, extract))
}

// collection enumerates name on obj and walks it. ok is false when the
// enumeration itself failed.
func (e *Engine) collection(ctx context.Context, obj bridge.Object, name string, extract Extractor) ([]Document, bool) {
	members, err := obj.Elements(ctx, name)
	if err != nil {
		logger.Debug("collection unreadable",
			logger.String("collection", name),
			logger.ErrorField(err))
		return nil, false
	}
	return e.walk(ctx, members, extract, false), true
}

// Tracks extracts every member of a track collection, skipping failures.
func (e *Engine) Tracks(ctx context.Context, members []bridge.Object) []Document {
	return e.walk(ctx, members, e.Track, true)
}
