package schema

import (
	"errors"

	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/repositories/preferences"
)

var errNoPreferences = errors.New("no preference store")

// CurrentVersion is the schema version of this build.
const CurrentVersion = 52

// Steps returns the upgrade steps in version order. Versions that only
// touched records without changing them have no step.
func Steps() []Step {
	return []Step{
		{Threshold: 2, Entity: models.BucketServer, Description: "node forceDisconnect", Apply: nodeForceDisconnect},
		{Threshold: 5, Entity: models.BucketWifiNetwork, Description: "dismissCounter", Apply: defaults("dismissCounter", 0)},
		{Threshold: 7, Entity: models.BucketServer, Description: "sequential server ids", Apply: sequentialID},
		{Threshold: 9, Entity: models.BucketServer, Description: "sequential group ids", Apply: sequentialGroupIDs},
		{Threshold: 12, Entity: models.BucketServer, Description: "group pingHost", Apply: groupDefaults("pingHost", "")},
		{Threshold: 12, Entity: models.BucketStaticIP, Description: "pingHost", Apply: defaults("pingHost", "")},
		{Threshold: 17, Entity: models.BucketOpenVPNServerCredentials, Description: "fixed id", Apply: fixedID(models.OpenVPNServerCredentialsID)},
		{Threshold: 19, Entity: models.BucketIKEv2ServerCredentials, Description: "fixed id", Apply: fixedID(models.IKEv2ServerCredentialsID)},
		{Threshold: 22, Entity: models.BucketStaticIP, Description: "sequential ids", Apply: sequentialID},
		{Threshold: 24, Entity: models.BucketWifiNetwork, Description: "preferred protocol", Apply: defaults(
			"preferredProtocolStatus", false,
			"preferredProtocol", "",
			"preferredPort", "",
		)},
		{Threshold: 27, Entity: models.BucketCustomConfig, Description: "credentials", Apply: defaults(
			"authRequired", false,
			"username", "",
			"password", "",
		)},
		{Threshold: 30, Entity: models.BucketNotice, Description: "popup", Apply: defaults("popup", false)},
		{Threshold: 33, Entity: models.BucketPortMap, Description: "legacyPorts", Apply: defaults("legacyPorts", []any{})},
		{Threshold: 35, Entity: models.BucketRobertFilters, Description: "filter enabled", Apply: robertEnabled},
		{Threshold: 37, Entity: models.BucketWifiNetwork, Description: "popupDismissCount", Apply: defaults("popupDismissCount", 0)},
		{Threshold: 39, Entity: models.BucketFavNode, Description: "pingIp", Apply: backfillPingIP},
		{Threshold: 39, Entity: models.BucketLastConnectedNode, Description: "pingIp", Apply: backfillPingIP},
		{Threshold: 41, Entity: models.BucketBestLocation, Description: "fixed id", Apply: fixedID(models.BestLocationID)},
		{Threshold: 44, Entity: models.BucketWifiNetwork, Description: "dontAskAgainForPreferredProtocol", Apply: defaults("dontAskAgainForPreferredProtocol", false)},
		{Threshold: 47, Entity: models.BucketUserPreferences, Description: "move settings to preferences", Apply: moveUserPreferences},
		{Threshold: 49, Entity: models.BucketStaticIP, Description: "wireguard fields", Apply: defaults("wgIp", "", "wgPubKey", "")},
		{Threshold: 51, Entity: models.BucketUserPreferences, Description: "drop table", Drop: true},
		{Threshold: 52, Entity: models.BucketWifiNetwork, Description: "connectionMode", Apply: defaults("connectionMode", models.ConnectionModeAuto)},
	}
}

// defaults backfills field/value pairs that are missing.
func defaults(kv ...any) func(*StepContext, int, *Record) error {
	return func(_ *StepContext, _ int, rec *Record) error {
		for i := 0; i+1 < len(kv); i += 2 {
			rec.New.SetDefault(kv[i].(string), cloneValue(kv[i+1]))
		}
		return nil
	}
}

// groupDefaults backfills a field on every nested group.
func groupDefaults(field string, v any) func(*StepContext, int, *Record) error {
	return func(_ *StepContext, _ int, rec *Record) error {
		for _, g := range rec.New.Docs("groups") {
			g.SetDefault(field, cloneValue(v))
		}
		return nil
	}
}

func fixedID(id string) func(*StepContext, int, *Record) error {
	return func(_ *StepContext, _ int, rec *Record) error {
		rec.New.Set("id", id)
		return nil
	}
}

func sequentialID(_ *StepContext, i int, rec *Record) error {
	rec.New.Set("id", i)
	return nil
}

func nodeForceDisconnect(_ *StepContext, _ int, rec *Record) error {
	for _, g := range rec.New.Docs("groups") {
		for _, n := range g.Docs("nodes") {
			n.SetDefault("forceDisconnect", false)
		}
	}
	return nil
}

// sequentialGroupIDs numbers groups across all servers.
func sequentialGroupIDs(sc *StepContext, _ int, rec *Record) error {
	for _, g := range rec.New.Docs("groups") {
		g.Set("id", sc.Next())
	}
	return nil
}

func robertEnabled(_ *StepContext, _ int, rec *Record) error {
	for _, f := range rec.New.Docs("filters") {
		status, _ := f.Int("status")
		f.SetDefault("enabled", status == 1)
	}
	return nil
}

// backfillPingIP copies the ping address of the matching server group.
// Records whose group is unknown get "".
func backfillPingIP(sc *StepContext, _ int, rec *Record) error {
	if !rec.New.Has("pingIp") || rec.New["pingIp"] == nil {
		ip, err := groupPingIP(sc, rec.New.String("groupId"))
		if err != nil {
			return err
		}
		rec.New.Set("pingIp", ip)
	}
	return nil
}

func groupPingIP(sc *StepContext, groupID string) (string, error) {
	if groupID == "" {
		return "", nil
	}
	rows, err := sc.Tx().Scan(sc.Context(), models.BucketServer)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		server, err := decodeDocument(row.Data)
		if err != nil {
			continue
		}
		for _, g := range server.Docs("groups") {
			if k, ok := keyOf(g, "id"); ok && k == groupID {
				return g.String("pingIp"), nil
			}
		}
	}
	return "", nil
}

// userPreferenceKeys maps legacy UserPreferences fields to preference keys.
var userPreferenceKeys = []struct {
	field string
	key   string
}{
	{"latencyType", preferences.KeyLatencyType},
	{"killSwitch", preferences.KeyKillSwitch},
	{"allowLan", preferences.KeyAllowLAN},
	{"connectionMode", preferences.KeyConnectionMode},
	{"protocol", preferences.KeyProtocol},
	{"port", preferences.KeyPort},
}

// moveUserPreferences copies the legacy settings into the preference store.
// The record itself stays until the table is dropped.
func moveUserPreferences(sc *StepContext, _ int, rec *Record) error {
	ctx := sc.Context()
	if sc.Preferences() == nil {
		return errNoPreferences
	}
	for _, m := range userPreferenceKeys {
		v, ok := rec.Old[m.field]
		if !ok || v == nil {
			continue
		}
		if err := preferences.SetJSON(ctx, sc.Preferences(), m.key, v); err != nil {
			return err
		}
		sc.Logger().Debug(ctx, "preference migrated", "key", m.key)
	}
	return nil
}
