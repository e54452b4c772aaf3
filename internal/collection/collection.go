package collection

import (
	"context"

	"github.com/fhuszti/streams-ms-go/internal/model"
)

// Hook reacts to a lifecycle event on a record. Hooks swallow their own
// failures: a broken side effect must never fail the operation it rides on.
type Hook func(ctx context.Context, video *model.Video)

// Collection groups the lifecycle hooks attached to one videos collection.
// Hooks are composed explicitly at startup rather than registered through
// package-level state, so each binary wires exactly the behaviour it runs.
type Collection struct {
	Slug string

	afterRead    []Hook
	afterChange  []Hook
	beforeDelete []Hook
}

func New(slug string) *Collection {
	return &Collection{Slug: slug}
}

func (c *Collection) OnAfterRead(h Hook)    { c.afterRead = append(c.afterRead, h) }
func (c *Collection) OnAfterChange(h Hook)  { c.afterChange = append(c.afterChange, h) }
func (c *Collection) OnBeforeDelete(h Hook) { c.beforeDelete = append(c.beforeDelete, h) }

// NotifyRead runs the after-read hooks for a record fetched by ID.
func (c *Collection) NotifyRead(ctx context.Context, video *model.Video) {
	for _, h := range c.afterRead {
		h(ctx, video)
	}
}

// NotifyChanged runs the after-change hooks for a record that was just
// created or updated.
func (c *Collection) NotifyChanged(ctx context.Context, video *model.Video) {
	for _, h := range c.afterChange {
		h(ctx, video)
	}
}

// NotifyDeleting runs the before-delete hooks while the record still exists.
func (c *Collection) NotifyDeleting(ctx context.Context, video *model.Video) {
	for _, h := range c.beforeDelete {
		h(ctx, video)
	}
}
