package preferences

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Keys written by the version 47 migration.
const (
	KeyLatencyType    = "latency_type"
	KeyKillSwitch     = "kill_switch"
	KeyAllowLAN       = "allow_lan"
	KeyConnectionMode = "connection_mode"
	KeyProtocol       = "selected_protocol"
	KeyPort           = "selected_port"
)
