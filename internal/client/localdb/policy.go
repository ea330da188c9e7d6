package localdb

import (
	"fmt"

	"github.com/dmitrijs2005/vpndb/internal/common"
)

// WritePolicy says what a failed write does.
type WritePolicy int

const (
	// FailHard returns a *WriteError to the caller.
	FailHard WritePolicy = iota
	// LogAndContinue logs the failure and reports success.
	LogAndContinue
)

func (p WritePolicy) String() string {
	switch p {
	case LogAndContinue:
		return "log-and-continue"
	default:
		return "fail-hard"
	}
}

// writePolicies lists every write operation. Saves fed by background sync
// must not break it; user-driven mutations must not be dropped silently.
var writePolicies = map[string]WritePolicy{
	"SaveSession":                  LogAndContinue,
	"SaveOldSession":               LogAndContinue,
	"SaveServers":                  LogAndContinue,
	"SaveStaticIPs":                LogAndContinue,
	"DeleteStaticIPs":              LogAndContinue,
	"SaveOpenVPNServerCredentials": LogAndContinue,
	"SaveIKEv2ServerCredentials":   LogAndContinue,
	"SavePortMap":                  LogAndContinue,
	"SaveNotifications":            LogAndContinue,
	"SaveReadNotices":              LogAndContinue,
	"SaveIP":                       LogAndContinue,
	"SaveNetwork":                  LogAndContinue,
	"RemoveNetwork":                LogAndContinue,
	"AddPingData":                  LogAndContinue,
	"SaveCustomConfig":             LogAndContinue,
	"RemoveCustomConfig":           LogAndContinue,
	"SaveRobertFilters":            LogAndContinue,
	"SaveLastConnectedNode":        LogAndContinue,
	"SaveBestLocation":             LogAndContinue,
	"SaveBestNode":                 LogAndContinue,
	"SaveFavNode":                  LogAndContinue,
	"RemoveFavNode":                LogAndContinue,

	"UpdateWifiNetwork":                             FailHard,
	"UpdateNetworkDismissCount":                     FailHard,
	"UpdateNetworkDontAskAgainForPreferredProtocol": FailHard,
	"UpdateTrustNetwork":                            FailHard,
	"UpdateConnectionMode":                          FailHard,
	"UpdateCustomConfigName":                        FailHard,
	"UpdateCustomConfigCredentials":                 FailHard,
	"ToggleRobertRule":                              FailHard,
	"Clean":                                         FailHard,
}

// PolicyFor returns the policy of op. Unlisted operations fail hard.
func PolicyFor(op string) WritePolicy {
	if p, ok := writePolicies[op]; ok {
		return p
	}
	return FailHard
}

// WriteError is a failed user-initiated write. It matches
// common.ErrWriteFailure and the underlying cause.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, common.ErrWriteFailure, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{common.ErrWriteFailure, e.Err}
}
