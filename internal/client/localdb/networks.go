package localdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
	"github.com/dmitrijs2005/vpndb/internal/common"
)

func (d *Database) GetNetworks(ctx context.Context) *live.Subscription[[]models.WifiNetwork] {
	return live.Collection[models.WifiNetwork](ctx, d.store.Hub(), models.BucketWifiNetwork)
}

func (d *Database) GetNetworksSync(ctx context.Context) []models.WifiNetwork {
	return readAll[models.WifiNetwork](d, ctx)
}

func (d *Database) SaveNetwork(ctx context.Context, n models.WifiNetwork) *objectstore.Pending {
	return upsert(d, ctx, "SaveNetwork", n)
}

func (d *Database) RemoveNetwork(ctx context.Context, ssid string) *objectstore.Pending {
	return d.exec(ctx, "RemoveNetwork", func(ctx context.Context, tx *objectstore.Tx) error {
		_, err := objectstore.Delete(ctx, tx, models.WifiNetwork{SSID: ssid})
		return err
	})
}

var networkFields = sync.OnceValue(func() map[string]struct{} {
	raw, _ := json.Marshal(models.WifiNetwork{})
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	// the key cannot be patched
	delete(out, "ssid")
	return out
})

// UpdateWifiNetwork sets the given JSON properties on the stored network
// with network's SSID. When no such network is stored, network itself is
// patched and saved.
func (d *Database) UpdateWifiNetwork(ctx context.Context, network models.WifiNetwork, properties map[string]any) error {
	fields := networkFields()
	for name := range properties {
		if _, ok := fields[name]; !ok {
			return &WriteError{Op: "UpdateWifiNetwork", Err: fmt.Errorf("%w: %q", common.ErrUnknownProperty, name)}
		}
	}

	return d.mutate(ctx, "UpdateWifiNetwork", func(ctx context.Context, tx *objectstore.Tx) error {
		data, ok, err := tx.Load(ctx, models.BucketWifiNetwork, network.SSID)
		if err != nil {
			return err
		}
		if !ok {
			if data, err = json.Marshal(network); err != nil {
				return err
			}
		}

		var doc map[string]any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("decode network %s: %w", network.SSID, err)
		}
		for name, v := range properties {
			doc[name] = v
		}

		patched, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		var updated models.WifiNetwork
		if err := json.Unmarshal(patched, &updated); err != nil {
			return fmt.Errorf("patch network %s: %w", network.SSID, err)
		}
		return objectstore.Upsert(ctx, tx, updated)
	})
}

// updateNetwork applies fn to a stored network. A missing network is not an
// error.
func (d *Database) updateNetwork(ctx context.Context, op, ssid string, fn func(*models.WifiNetwork)) error {
	return d.mutate(ctx, op, func(ctx context.Context, tx *objectstore.Tx) error {
		n, err := objectstore.Get[models.WifiNetwork](ctx, tx, ssid)
		if err != nil || n == nil {
			return err
		}
		fn(n)
		return objectstore.Upsert(ctx, tx, *n)
	})
}

func (d *Database) UpdateNetworkDismissCount(ctx context.Context, ssid string, count int) error {
	return d.updateNetwork(ctx, "UpdateNetworkDismissCount", ssid, func(n *models.WifiNetwork) {
		n.DismissCounter = count
	})
}

func (d *Database) UpdateNetworkDontAskAgainForPreferredProtocol(ctx context.Context, ssid string, dontAsk bool) error {
	return d.updateNetwork(ctx, "UpdateNetworkDontAskAgainForPreferredProtocol", ssid, func(n *models.WifiNetwork) {
		n.DontAskAgainForPreferredProtocol = dontAsk
	})
}

func (d *Database) UpdateTrustNetwork(ctx context.Context, ssid string, trusted bool) error {
	return d.updateNetwork(ctx, "UpdateTrustNetwork", ssid, func(n *models.WifiNetwork) {
		n.Status = trusted
	})
}

// UpdateConnectionMode sets the connection mode of every stored network.
func (d *Database) UpdateConnectionMode(ctx context.Context, mode string) error {
	return d.mutate(ctx, "UpdateConnectionMode", func(ctx context.Context, tx *objectstore.Tx) error {
		networks, err := objectstore.GetAll[models.WifiNetwork](ctx, tx)
		if err != nil {
			return err
		}
		for i := range networks {
			networks[i].ConnectionMode = mode
		}
		return objectstore.UpsertAll(ctx, tx, networks)
	})
}
