package models

import "strconv"

// Server is a location (country) with its groups (cities).
type Server struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode"`
	Status      bool    `json:"status"`
	PremiumOnly bool    `json:"premiumOnly"`
	DNSHostname string  `json:"dnsHostname"`
	Groups      []Group `json:"groups"`
}

func (Server) Bucket() string       { return BucketServer }
func (s Server) PrimaryKey() string { return strconv.Itoa(s.ID) }

// Group is a city inside a server; it owns the nodes that serve it.
type Group struct {
	ID          int    `json:"id"`
	City        string `json:"city"`
	Nick        string `json:"nick"`
	PremiumOnly bool   `json:"premiumOnly"`
	PingIP      string `json:"pingIp"`
	PingHost    string `json:"pingHost"`
	WgPublicKey string `json:"wgPubKey"`
	OvpnX509    string `json:"ovpnX509"`
	Nodes       []Node `json:"nodes"`
}

// BestNode returns the node with the highest weight; the first one wins ties.
func (g Group) BestNode() (Node, bool) {
	if len(g.Nodes) == 0 {
		return Node{}, false
	}
	best := g.Nodes[0]
	for _, n := range g.Nodes[1:] {
		if n.Weight > best.Weight {
			best = n
		}
	}
	return best, true
}

// BestNodeHostname is the hostname of BestNode, or "" for an empty group.
func (g Group) BestNodeHostname() string {
	n, ok := g.BestNode()
	if !ok {
		return ""
	}
	return n.Hostname
}

type Node struct {
	IP              string `json:"ip"`
	IP2             string `json:"ip2"`
	IP3             string `json:"ip3"`
	Hostname        string `json:"hostname"`
	DNSHostname     string `json:"dnsHostname"`
	Weight          int    `json:"weight"`
	ForceDisconnect bool   `json:"forceDisconnect"`
}

// StaticIP is a dedicated address bought by the user.
type StaticIP struct {
	ID          int                 `json:"id"`
	StaticIP    string              `json:"staticIp"`
	Type        string              `json:"type"`
	Name        string              `json:"name"`
	CountryCode string              `json:"countryCode"`
	CityName    string              `json:"cityName"`
	ServerID    int                 `json:"serverId"`
	PingHost    string              `json:"pingHost"`
	WgIP        string              `json:"wgIp"`
	WgPublicKey string              `json:"wgPubKey"`
	OvpnX509    string              `json:"ovpnX509"`
	Credentials []ServerCredentials `json:"credentials"`
	Nodes       []Node              `json:"nodes"`
}

func (StaticIP) Bucket() string       { return BucketStaticIP }
func (s StaticIP) PrimaryKey() string { return strconv.Itoa(s.ID) }

// ServerCredentials is a username/password pair.
type ServerCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OpenVPNServerCredentials is the single OpenVPN credential record.
type OpenVPNServerCredentials struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (OpenVPNServerCredentials) Bucket() string     { return BucketOpenVPNServerCredentials }
func (OpenVPNServerCredentials) PrimaryKey() string { return OpenVPNServerCredentialsID }

// IKEv2ServerCredentials is the single IKEv2 credential record.
type IKEv2ServerCredentials struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (IKEv2ServerCredentials) Bucket() string     { return BucketIKEv2ServerCredentials }
func (IKEv2ServerCredentials) PrimaryKey() string { return IKEv2ServerCredentialsID }

// PortMap lists the ports offered for one protocol heading.
type PortMap struct {
	Heading     string   `json:"heading"`
	File        string   `json:"file"`
	Ports       []string `json:"ports"`
	LegacyPorts []string `json:"legacyPorts"`
	UseIP       int      `json:"useIp"`
}

func (PortMap) Bucket() string       { return BucketPortMap }
func (p PortMap) PrimaryKey() string { return p.Heading }
