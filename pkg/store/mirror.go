package store

import (
	"context"
	"errors"
)

// Mirror saves every record to two stores and reads from the primary.
// It keeps meta.json in job directories while MongoDB serves lookups.
type Mirror struct {
	Primary   Store
	Secondary Store
}

// NewMirror returns a store writing to both primary and secondary.
func NewMirror(primary, secondary Store) *Mirror {
	return &Mirror{Primary: primary, Secondary: secondary}
}

func (m *Mirror) Save(ctx context.Context, meta *Meta) error {
	if err := m.Primary.Save(ctx, meta); err != nil {
		return err
	}
	return m.Secondary.Save(ctx, meta)
}

func (m *Mirror) Get(ctx context.Context, jobID string) (*Meta, error) {
	return m.Primary.Get(ctx, jobID)
}

func (m *Mirror) List(ctx context.Context, limit int) ([]*Meta, error) {
	return m.Primary.List(ctx, limit)
}

func (m *Mirror) Close() error {
	return errors.Join(m.Primary.Close(), m.Secondary.Close())
}

var _ Store = (*Mirror)(nil)
