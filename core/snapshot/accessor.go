package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"musicbridge/core/bridge"
	"musicbridge/logger"
)

// read fetches one attribute, from the bag when it carries the key and
// through the bridge otherwise. A failed read reports false and never a
// placeholder value; a successful read of "missing value" yields nil, true.
func read(ctx context.Context, obj bridge.Object, entity string, f Field, bag map[string]any) (any, bool) {
	if v, ok := bag[f.Property]; ok {
		return v, true
	}
	v, err := obj.Get(ctx, f.Property)
	if err != nil {
		logger.Debug("field unreadable",
			logger.String("entity", entity),
			logger.String("field", f.Property),
			logger.ErrorField(err))
		return nil, false
	}
	return v, true
}

// fill reads every field of s into doc and returns how many reads succeeded.
// bag may be nil.
func fill(ctx context.Context, obj bridge.Object, s schema, doc Document, bag map[string]any) int {
	n := 0
	for _, f := range s.fields {
		if v, ok := read(ctx, obj, s.entity, f, bag); ok {
			doc[f.Key] = v
			n++
		}
	}
	return n
}

// extract produces the base document for obj under the engine's strategy.
// The attribute bag is returned alongside when it could be read, so callers
// can probe it without another round trip.
func (e *Engine) extract(ctx context.Context, obj bridge.Object, s schema) (Document, map[string]any, error) {
	bag, bagErr := obj.Properties(ctx)

	if e.strategy == Passthrough {
		if bagErr != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, s.entity, bagErr)
		}
		return Document(bag), bag, nil
	}

	doc := make(Document, len(s.fields)+1)
	n := fill(ctx, obj, s, doc, bag)

	if bagErr != nil {
		logger.Debug("attribute bag unreadable",
			logger.String("entity", s.entity),
			logger.ErrorField(bagErr))
	} else if s.raw {
		if raw, err := json.Marshal(bag); err == nil {
			doc[fieldRawProperties.Key] = string(raw)
			n++
		}
	}

	if n == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnreadable, s.entity)
	}
	return doc, bag, nil
}

// set writes v under f's key when ok, and otherwise removes whatever the
// bag may have carried under that key.
func (e *Engine) set(doc Document, f Field, v any, ok bool) {
	k := e.strategy.key(f)
	if ok {
		doc[k] = v
		return
	}
	delete(doc, k)
}
