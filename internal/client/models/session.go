// Package models defines the records kept in the local object store.
//
// Every record is a plain struct with JSON tags. Bucket reports the table
// the record lives in and PrimaryKey its identity inside that table; both use
// value receivers so a zero value is enough to locate a table.
package models

// Fixed ids of singleton records.
const (
	SessionID                  = "Session"
	OldSessionID               = "OldSession"
	BestLocationID             = "BestLocation"
	BestNodeID                 = "BestNode"
	OpenVPNServerCredentialsID = "OpenVPNServerCredentials"
	IKEv2ServerCredentialsID   = "IKEv2ServerCredentials"
	RobertFiltersID            = "RobertFilters"
	MyIPID                     = "MyIP"
	UserPreferencesID          = "UserPreferences"
)

// Session is the signed-in account as last reported by the API.
type Session struct {
	ID           string  `json:"id"`
	AuthHash     string  `json:"authHash"`
	Username     string  `json:"username"`
	UserID       string  `json:"userId"`
	Email        string  `json:"email"`
	TrafficUsed  float64 `json:"trafficUsed"`
	TrafficMax   float64 `json:"trafficMax"`
	Status       int     `json:"status"`
	IsPremium    bool    `json:"isPremium"`
	BillingPlan  int     `json:"billingPlanId"`
	LocationHash string  `json:"locHash"`
}

func (Session) Bucket() string     { return BucketSession }
func (Session) PrimaryKey() string { return SessionID }

// OldSession is the session snapshot taken before the latest refresh; it is
// used to detect plan and location changes.
type OldSession struct {
	Session
}

func (OldSession) Bucket() string     { return BucketOldSession }
func (OldSession) PrimaryKey() string { return OldSessionID }

// UserPreferences is the legacy settings record. Its fields moved to the
// preference store at schema version 47 and the table was dropped at 51; the
// type remains so old stores can be seeded in tests.
type UserPreferences struct {
	ID             string `json:"id"`
	LatencyType    string `json:"latencyType"`
	KillSwitch     bool   `json:"killSwitch"`
	AllowLAN       bool   `json:"allowLan"`
	ConnectionMode string `json:"connectionMode"`
	Protocol       string `json:"protocol"`
	Port           string `json:"port"`
}

func (UserPreferences) Bucket() string     { return BucketUserPreferences }
func (UserPreferences) PrimaryKey() string { return UserPreferencesID }
