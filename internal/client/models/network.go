package models

// Connection modes stored on WifiNetwork.
const (
	ConnectionModeAuto   = "auto"
	ConnectionModeManual = "manual"
)

// WifiNetwork holds per-network rules, keyed by SSID.
type WifiNetwork struct {
	SSID                             string `json:"ssid"`
	Status                           bool   `json:"status"`
	ProtocolType                     string `json:"protocolType"`
	Port                             string `json:"port"`
	PreferredProtocol                string `json:"preferredProtocol"`
	PreferredPort                    string `json:"preferredPort"`
	PreferredProtocolStatus          bool   `json:"preferredProtocolStatus"`
	DismissCounter                   int    `json:"dismissCounter"`
	PopupDismissCount                int    `json:"popupDismissCount"`
	DontAskAgainForPreferredProtocol bool   `json:"dontAskAgainForPreferredProtocol"`
	ConnectionMode                   string `json:"connectionMode"`
}

func (WifiNetwork) Bucket() string       { return BucketWifiNetwork }
func (w WifiNetwork) PrimaryKey() string { return w.SSID }

// CustomConfig is a user-imported OpenVPN or WireGuard profile.
type CustomConfig struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ServerAddress string `json:"serverAddress"`
	Protocol      string `json:"protocol"`
	Port          string `json:"port"`
	Type          string `json:"type"`
	AuthRequired  bool   `json:"authRequired"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

func (CustomConfig) Bucket() string       { return BucketCustomConfig }
func (c CustomConfig) PrimaryKey() string { return c.ID }

// RobertFilters is the singleton list of R.O.B.E.R.T. blocking rules.
type RobertFilters struct {
	ID      string         `json:"id"`
	Filters []RobertFilter `json:"filters"`
}

func (RobertFilters) Bucket() string     { return BucketRobertFilters }
func (RobertFilters) PrimaryKey() string { return RobertFiltersID }

// RobertFilter is a single rule. Status (0/1) and Enabled always agree.
type RobertFilter struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Enabled     bool   `json:"enabled"`
}

// Toggle flips the rule between off (0/false) and on (1/true).
func (f *RobertFilter) Toggle() {
	if f.Status == 1 {
		f.Status = 0
		f.Enabled = false
		return
	}
	f.Status = 1
	f.Enabled = true
}
