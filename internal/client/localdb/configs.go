package localdb

import (
	"context"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
	"github.com/google/uuid"
)

// SaveCustomConfig stores c and returns its id, generating one when c has
// none.
func (d *Database) SaveCustomConfig(ctx context.Context, c models.CustomConfig) (string, *objectstore.Pending) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return c.ID, upsert(d, ctx, "SaveCustomConfig", c)
}

func (d *Database) RemoveCustomConfig(ctx context.Context, id string) *objectstore.Pending {
	return d.exec(ctx, "RemoveCustomConfig", func(ctx context.Context, tx *objectstore.Tx) error {
		_, err := objectstore.Delete(ctx, tx, models.CustomConfig{ID: id})
		return err
	})
}

func (d *Database) GetCustomConfig(ctx context.Context, id string) *models.CustomConfig {
	return readOne[models.CustomConfig](d, ctx, id)
}

func (d *Database) GetCustomConfigs(ctx context.Context) *live.Subscription[[]models.CustomConfig] {
	return live.Collection[models.CustomConfig](ctx, d.store.Hub(), models.BucketCustomConfig)
}

func (d *Database) updateCustomConfig(ctx context.Context, op, id string, fn func(*models.CustomConfig)) error {
	return d.mutate(ctx, op, func(ctx context.Context, tx *objectstore.Tx) error {
		c, err := objectstore.Get[models.CustomConfig](ctx, tx, id)
		if err != nil || c == nil {
			return err
		}
		fn(c)
		return objectstore.Upsert(ctx, tx, *c)
	})
}

func (d *Database) UpdateCustomConfigName(ctx context.Context, id, name string) error {
	return d.updateCustomConfig(ctx, "UpdateCustomConfigName", id, func(c *models.CustomConfig) {
		c.Name = name
	})
}

// UpdateCustomConfigCredentials replaces the stored username and password.
func (d *Database) UpdateCustomConfigCredentials(ctx context.Context, id, username, password string) error {
	return d.updateCustomConfig(ctx, "UpdateCustomConfigCredentials", id, func(c *models.CustomConfig) {
		c.Username = username
		c.Password = password
	})
}
