package models

import "strconv"

// FavNode is a favourite location, keyed by group.
type FavNode struct {
	GroupID     string `json:"groupId"`
	ServerName  string `json:"serverName"`
	CountryCode string `json:"countryCode"`
	Hostname    string `json:"hostname"`
	IPAddress   string `json:"ipAddress"`
	CityName    string `json:"cityName"`
	Nickname    string `json:"nickName"`
	PingIP      string `json:"pingIp"`
}

func (FavNode) Bucket() string       { return BucketFavNode }
func (f FavNode) PrimaryKey() string { return f.GroupID }

// LastConnectedNode records a location the tunnel connected to.
type LastConnectedNode struct {
	GroupID     string `json:"groupId"`
	ServerName  string `json:"serverName"`
	CountryCode string `json:"countryCode"`
	Hostname    string `json:"hostname"`
	CityName    string `json:"cityName"`
	Nickname    string `json:"nickName"`
	PingIP      string `json:"pingIp"`
	ConnectedAt int64  `json:"connectedAt"`
}

func (LastConnectedNode) Bucket() string       { return BucketLastConnectedNode }
func (l LastConnectedNode) PrimaryKey() string { return l.GroupID }

// BestLocation is the singleton location suggested on first launch.
type BestLocation struct {
	ID          string `json:"id"`
	GroupID     int    `json:"groupId"`
	CountryCode string `json:"countryCode"`
	Hostname    string `json:"hostname"`
	IPAddress   string `json:"ipAddress"`
	CityName    string `json:"cityName"`
	NickName    string `json:"nickName"`
	ServerName  string `json:"serverName"`
}

func (BestLocation) Bucket() string     { return BucketBestLocation }
func (BestLocation) PrimaryKey() string { return BestLocationID }

// BestNode is the singleton node picked by latency.
type BestNode struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	GroupID  int    `json:"groupId"`
	MinTime  int    `json:"minTime"`
}

func (BestNode) Bucket() string     { return BucketBestNode }
func (BestNode) PrimaryKey() string { return BestNodeID }

// PingData is the latest latency measured for an IP.
type PingData struct {
	IP      string `json:"ip"`
	Latency int    `json:"latency"`
}

func (PingData) Bucket() string       { return BucketPingData }
func (p PingData) PrimaryKey() string { return p.IP }

// MyIP is the singleton public address as seen by the API.
type MyIP struct {
	ID     string `json:"id"`
	UserIP string `json:"userIp"`
}

func (MyIP) Bucket() string     { return BucketMyIP }
func (MyIP) PrimaryKey() string { return MyIPID }

// Notice is an in-app announcement.
type Notice struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Date     int64  `json:"date"`
	Popup    bool   `json:"popup"`
	PermFree bool   `json:"permFree"`
	PermPro  bool   `json:"permPro"`
}

func (Notice) Bucket() string       { return BucketNotice }
func (n Notice) PrimaryKey() string { return strconv.Itoa(n.ID) }

// ReadNotice marks a notice as read.
type ReadNotice struct {
	ID int `json:"id"`
}

func (ReadNotice) Bucket() string       { return BucketReadNotice }
func (r ReadNotice) PrimaryKey() string { return strconv.Itoa(r.ID) }
