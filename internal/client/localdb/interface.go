package localdb

import (
	"context"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
)

// ServerAndGroup is a group together with the server that owns it.
type ServerAndGroup struct {
	Server models.Server
	Group  models.Group
}

// LocalDatabase is the persistence surface of the VPN client.
type LocalDatabase interface {
	// Migrate brings stored data to the current schema and opens the
	// store for writes. Nothing else may be called before it succeeds.
	Migrate(ctx context.Context) error

	GetSession(ctx context.Context) *live.Subscription[*models.Session]
	GetSessionSync(ctx context.Context) *models.Session
	SaveSession(ctx context.Context, s models.Session) *objectstore.Pending
	SaveOldSession(ctx context.Context, s models.Session) *objectstore.Pending
	GetOldSession(ctx context.Context) *models.Session

	GetServers(ctx context.Context) []models.Server
	GetServersObservable(ctx context.Context) *live.Subscription[[]models.Server]
	SaveServers(ctx context.Context, servers []models.Server) *objectstore.Pending
	GetGroups(ctx context.Context) []models.Group
	GetServerAndGroup(ctx context.Context, bestNodeHostname string) *ServerAndGroup

	GetStaticIPs(ctx context.Context) []models.StaticIP
	SaveStaticIPs(ctx context.Context, ips []models.StaticIP) *objectstore.Pending
	DeleteStaticIPs(ctx context.Context, ignore []string) *objectstore.Pending

	GetOpenVPNServerCredentials(ctx context.Context) *models.OpenVPNServerCredentials
	SaveOpenVPNServerCredentials(ctx context.Context, c models.OpenVPNServerCredentials) *objectstore.Pending
	GetIKEv2ServerCredentials(ctx context.Context) *models.IKEv2ServerCredentials
	SaveIKEv2ServerCredentials(ctx context.Context, c models.IKEv2ServerCredentials) *objectstore.Pending

	GetPortMap(ctx context.Context) []models.PortMap
	SavePortMap(ctx context.Context, portMaps []models.PortMap) *objectstore.Pending
	GetPorts(ctx context.Context, protocolType string) []string

	GetNotifications(ctx context.Context) *live.Subscription[[]models.Notice]
	SaveNotifications(ctx context.Context, notices []models.Notice) *objectstore.Pending
	GetReadNotices(ctx context.Context) []models.ReadNotice
	SaveReadNotices(ctx context.Context, notices []models.ReadNotice) *objectstore.Pending

	GetIP(ctx context.Context) *live.Subscription[*models.MyIP]
	SaveIP(ctx context.Context, ip models.MyIP) *objectstore.Pending

	GetNetworks(ctx context.Context) *live.Subscription[[]models.WifiNetwork]
	GetNetworksSync(ctx context.Context) []models.WifiNetwork
	SaveNetwork(ctx context.Context, n models.WifiNetwork) *objectstore.Pending
	RemoveNetwork(ctx context.Context, ssid string) *objectstore.Pending
	UpdateWifiNetwork(ctx context.Context, network models.WifiNetwork, properties map[string]any) error
	UpdateNetworkDismissCount(ctx context.Context, ssid string, count int) error
	UpdateNetworkDontAskAgainForPreferredProtocol(ctx context.Context, ssid string, dontAsk bool) error
	UpdateTrustNetwork(ctx context.Context, ssid string, trusted bool) error
	UpdateConnectionMode(ctx context.Context, mode string) error

	AddPingData(ctx context.Context, p models.PingData) *objectstore.Pending
	GetAllPingData(ctx context.Context) []models.PingData

	SaveCustomConfig(ctx context.Context, c models.CustomConfig) (string, *objectstore.Pending)
	RemoveCustomConfig(ctx context.Context, id string) *objectstore.Pending
	GetCustomConfig(ctx context.Context, id string) *models.CustomConfig
	GetCustomConfigs(ctx context.Context) *live.Subscription[[]models.CustomConfig]
	UpdateCustomConfigName(ctx context.Context, id, name string) error
	UpdateCustomConfigCredentials(ctx context.Context, id, username, password string) error

	GetRobertFilters(ctx context.Context) *models.RobertFilters
	SaveRobertFilters(ctx context.Context, f models.RobertFilters) *objectstore.Pending
	ToggleRobertRule(ctx context.Context, id string) error

	GetLastConnectedNode(ctx context.Context) *live.Subscription[*models.LastConnectedNode]
	SaveLastConnectedNode(ctx context.Context, n models.LastConnectedNode) *objectstore.Pending

	GetBestLocation(ctx context.Context) *live.Subscription[*models.BestLocation]
	SaveBestLocation(ctx context.Context, b models.BestLocation) *objectstore.Pending
	SaveBestNode(ctx context.Context, n models.BestNode) *objectstore.Pending
	GetBestNode(ctx context.Context) *models.BestNode

	SaveFavNode(ctx context.Context, n models.FavNode) *objectstore.Pending
	GetFavNode(ctx context.Context) *live.Subscription[[]models.FavNode]
	GetFavNodeSync(ctx context.Context) []models.FavNode
	RemoveFavNode(ctx context.Context, hostname string) *objectstore.Pending

	// Clean deletes every record. Open subscriptions first receive their
	// empty value.
	Clean(ctx context.Context) error
	Close() error
}

var _ LocalDatabase = (*Database)(nil)
