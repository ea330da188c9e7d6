package localdb

import (
	"context"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
)

func (d *Database) GetServers(ctx context.Context) []models.Server {
	return readAll[models.Server](d, ctx)
}

func (d *Database) GetServersObservable(ctx context.Context) *live.Subscription[[]models.Server] {
	return live.Collection[models.Server](ctx, d.store.Hub(), models.BucketServer)
}

func (d *Database) SaveServers(ctx context.Context, servers []models.Server) *objectstore.Pending {
	return upsert(d, ctx, "SaveServers", servers...)
}

// GetGroups flattens the groups of every server.
func (d *Database) GetGroups(ctx context.Context) []models.Group {
	var groups []models.Group
	for _, s := range d.GetServers(ctx) {
		groups = append(groups, s.Groups...)
	}
	return groups
}

// GetServerAndGroup finds the group whose best node is bestNodeHostname.
func (d *Database) GetServerAndGroup(ctx context.Context, bestNodeHostname string) *ServerAndGroup {
	if bestNodeHostname == "" {
		return nil
	}
	for _, s := range d.GetServers(ctx) {
		for _, g := range s.Groups {
			if g.BestNodeHostname() == bestNodeHostname {
				return &ServerAndGroup{Server: s, Group: g}
			}
		}
	}
	return nil
}

func (d *Database) GetStaticIPs(ctx context.Context) []models.StaticIP {
	return readAll[models.StaticIP](d, ctx)
}

func (d *Database) SaveStaticIPs(ctx context.Context, ips []models.StaticIP) *objectstore.Pending {
	return upsert(d, ctx, "SaveStaticIPs", ips...)
}

// DeleteStaticIPs removes every static IP whose address is not in ignore.
func (d *Database) DeleteStaticIPs(ctx context.Context, ignore []string) *objectstore.Pending {
	keep := make(map[string]struct{}, len(ignore))
	for _, ip := range ignore {
		keep[ip] = struct{}{}
	}
	return d.exec(ctx, "DeleteStaticIPs", func(ctx context.Context, tx *objectstore.Tx) error {
		_, err := objectstore.DeleteWhere(ctx, tx, func(s models.StaticIP) bool {
			_, ok := keep[s.StaticIP]
			return !ok
		})
		return err
	})
}

func (d *Database) GetPortMap(ctx context.Context) []models.PortMap {
	return readAll[models.PortMap](d, ctx)
}

func (d *Database) SavePortMap(ctx context.Context, portMaps []models.PortMap) *objectstore.Pending {
	return upsert(d, ctx, "SavePortMap", portMaps...)
}

// GetPorts returns the ports offered for protocolType, or nil when the
// protocol is unknown.
func (d *Database) GetPorts(ctx context.Context, protocolType string) []string {
	for _, pm := range d.GetPortMap(ctx) {
		if pm.Heading == protocolType {
			return append([]string(nil), pm.Ports...)
		}
	}
	return nil
}

func (d *Database) AddPingData(ctx context.Context, p models.PingData) *objectstore.Pending {
	return upsert(d, ctx, "AddPingData", p)
}

func (d *Database) GetAllPingData(ctx context.Context) []models.PingData {
	return readAll[models.PingData](d, ctx)
}
