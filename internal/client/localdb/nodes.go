package localdb

import (
	"context"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
)

// GetLastConnectedNode follows the most recently connected node.
func (d *Database) GetLastConnectedNode(ctx context.Context) *live.Subscription[*models.LastConnectedNode] {
	return live.Derived(ctx, d.store.Hub(), models.BucketLastConnectedNode, latestConnected)
}

func latestConnected(nodes []models.LastConnectedNode) *models.LastConnectedNode {
	if len(nodes) == 0 {
		return nil
	}
	latest := nodes[0]
	for _, n := range nodes[1:] {
		if n.ConnectedAt > latest.ConnectedAt {
			latest = n
		}
	}
	return &latest
}

func (d *Database) SaveLastConnectedNode(ctx context.Context, n models.LastConnectedNode) *objectstore.Pending {
	return upsert(d, ctx, "SaveLastConnectedNode", n)
}

func (d *Database) GetBestLocation(ctx context.Context) *live.Subscription[*models.BestLocation] {
	return live.Object[models.BestLocation](ctx, d.store.Hub(), models.BucketBestLocation, models.BestLocationID)
}

func (d *Database) SaveBestLocation(ctx context.Context, b models.BestLocation) *objectstore.Pending {
	b.ID = models.BestLocationID
	return upsert(d, ctx, "SaveBestLocation", b)
}

func (d *Database) SaveBestNode(ctx context.Context, n models.BestNode) *objectstore.Pending {
	n.ID = models.BestNodeID
	return upsert(d, ctx, "SaveBestNode", n)
}

func (d *Database) GetBestNode(ctx context.Context) *models.BestNode {
	return readOne[models.BestNode](d, ctx, models.BestNodeID)
}

func (d *Database) SaveFavNode(ctx context.Context, n models.FavNode) *objectstore.Pending {
	return upsert(d, ctx, "SaveFavNode", n)
}

func (d *Database) GetFavNode(ctx context.Context) *live.Subscription[[]models.FavNode] {
	return live.Collection[models.FavNode](ctx, d.store.Hub(), models.BucketFavNode)
}

func (d *Database) GetFavNodeSync(ctx context.Context) []models.FavNode {
	return readAll[models.FavNode](d, ctx)
}

// RemoveFavNode removes the favourites pointing at hostname.
func (d *Database) RemoveFavNode(ctx context.Context, hostname string) *objectstore.Pending {
	return d.exec(ctx, "RemoveFavNode", func(ctx context.Context, tx *objectstore.Tx) error {
		_, err := objectstore.DeleteWhere(ctx, tx, func(n models.FavNode) bool {
			return n.Hostname == hostname
		})
		return err
	})
}

func (d *Database) GetRobertFilters(ctx context.Context) *models.RobertFilters {
	return readOne[models.RobertFilters](d, ctx, models.RobertFiltersID)
}

func (d *Database) SaveRobertFilters(ctx context.Context, f models.RobertFilters) *objectstore.Pending {
	f.ID = models.RobertFiltersID
	return upsert(d, ctx, "SaveRobertFilters", f)
}

// ToggleRobertRule flips one filter on or off. Unknown ids are ignored.
func (d *Database) ToggleRobertRule(ctx context.Context, id string) error {
	return d.mutate(ctx, "ToggleRobertRule", func(ctx context.Context, tx *objectstore.Tx) error {
		rf, err := objectstore.Get[models.RobertFilters](ctx, tx, models.RobertFiltersID)
		if err != nil || rf == nil {
			return err
		}
		for i := range rf.Filters {
			if rf.Filters[i].ID == id {
				rf.Filters[i].Toggle()
				return objectstore.Upsert(ctx, tx, *rf)
			}
		}
		return nil
	})
}
