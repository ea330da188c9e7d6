package models

// Bucket names. Each entity type is stored under its own bucket in the
// objects table; the names double as the entity names used by migrations.
const (
	BucketSession                  = "Session"
	BucketOldSession               = "OldSession"
	BucketServer                   = "Server"
	BucketStaticIP                 = "StaticIP"
	BucketCustomConfig             = "CustomConfig"
	BucketWifiNetwork              = "WifiNetwork"
	BucketFavNode                  = "FavNode"
	BucketLastConnectedNode        = "LastConnectedNode"
	BucketBestLocation             = "BestLocation"
	BucketBestNode                 = "BestNode"
	BucketOpenVPNServerCredentials = "OpenVPNServerCredentials"
	BucketIKEv2ServerCredentials   = "IKEv2ServerCredentials"
	BucketRobertFilters            = "RobertFilters"
	BucketPortMap                  = "PortMap"
	BucketNotice                   = "Notice"
	BucketReadNotice               = "ReadNotice"
	BucketMyIP                     = "MyIP"
	BucketPingData                 = "PingData"
	BucketUserPreferences          = "UserPreferences"
)

// KeyFields maps every bucket to the JSON field that holds its primary key.
// Singleton entities keep their fixed id in "id".
var KeyFields = map[string]string{
	BucketSession:                  "id",
	BucketOldSession:               "id",
	BucketServer:                   "id",
	BucketStaticIP:                 "id",
	BucketCustomConfig:             "id",
	BucketWifiNetwork:              "ssid",
	BucketFavNode:                  "groupId",
	BucketLastConnectedNode:        "groupId",
	BucketBestLocation:             "id",
	BucketBestNode:                 "id",
	BucketOpenVPNServerCredentials: "id",
	BucketIKEv2ServerCredentials:   "id",
	BucketRobertFilters:            "id",
	BucketPortMap:                  "heading",
	BucketNotice:                   "id",
	BucketReadNotice:               "id",
	BucketMyIP:                     "id",
	BucketPingData:                 "ip",
	BucketUserPreferences:          "id",
}

// Buckets lists every bucket in a stable order.
func Buckets() []string {
	return []string{
		BucketSession, BucketOldSession, BucketServer, BucketStaticIP,
		BucketCustomConfig, BucketWifiNetwork, BucketFavNode,
		BucketLastConnectedNode, BucketBestLocation, BucketBestNode,
		BucketOpenVPNServerCredentials, BucketIKEv2ServerCredentials,
		BucketRobertFilters, BucketPortMap, BucketNotice, BucketReadNotice,
		BucketMyIP, BucketPingData, BucketUserPreferences,
	}
}
