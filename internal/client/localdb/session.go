package localdb

import (
	"context"

	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
)

func (d *Database) GetSession(ctx context.Context) *live.Subscription[*models.Session] {
	return live.Object[models.Session](ctx, d.store.Hub(), models.BucketSession, models.SessionID)
}

func (d *Database) GetSessionSync(ctx context.Context) *models.Session {
	return readOne[models.Session](d, ctx, models.SessionID)
}

// SaveSession replaces the stored session.
func (d *Database) SaveSession(ctx context.Context, s models.Session) *objectstore.Pending {
	s.ID = models.SessionID
	return upsert(d, ctx, "SaveSession", s)
}

func (d *Database) SaveOldSession(ctx context.Context, s models.Session) *objectstore.Pending {
	s.ID = models.OldSessionID
	return upsert(d, ctx, "SaveOldSession", models.OldSession{Session: s})
}

func (d *Database) GetOldSession(ctx context.Context) *models.Session {
	old := readOne[models.OldSession](d, ctx, models.OldSessionID)
	if old == nil {
		return nil
	}
	return &old.Session
}

func (d *Database) GetIP(ctx context.Context) *live.Subscription[*models.MyIP] {
	return live.Object[models.MyIP](ctx, d.store.Hub(), models.BucketMyIP, models.MyIPID)
}

func (d *Database) SaveIP(ctx context.Context, ip models.MyIP) *objectstore.Pending {
	ip.ID = models.MyIPID
	return upsert(d, ctx, "SaveIP", ip)
}

func (d *Database) GetOpenVPNServerCredentials(ctx context.Context) *models.OpenVPNServerCredentials {
	return readOne[models.OpenVPNServerCredentials](d, ctx, models.OpenVPNServerCredentialsID)
}

func (d *Database) SaveOpenVPNServerCredentials(ctx context.Context, c models.OpenVPNServerCredentials) *objectstore.Pending {
	c.ID = models.OpenVPNServerCredentialsID
	return upsert(d, ctx, "SaveOpenVPNServerCredentials", c)
}

func (d *Database) GetIKEv2ServerCredentials(ctx context.Context) *models.IKEv2ServerCredentials {
	return readOne[models.IKEv2ServerCredentials](d, ctx, models.IKEv2ServerCredentialsID)
}

func (d *Database) SaveIKEv2ServerCredentials(ctx context.Context, c models.IKEv2ServerCredentials) *objectstore.Pending {
	c.ID = models.IKEv2ServerCredentialsID
	return upsert(d, ctx, "SaveIKEv2ServerCredentials", c)
}

func (d *Database) GetNotifications(ctx context.Context) *live.Subscription[[]models.Notice] {
	return live.Collection[models.Notice](ctx, d.store.Hub(), models.BucketNotice)
}

func (d *Database) SaveNotifications(ctx context.Context, notices []models.Notice) *objectstore.Pending {
	return upsert(d, ctx, "SaveNotifications", notices...)
}

func (d *Database) GetReadNotices(ctx context.Context) []models.ReadNotice {
	return readAll[models.ReadNotice](d, ctx)
}

func (d *Database) SaveReadNotices(ctx context.Context, notices []models.ReadNotice) *objectstore.Pending {
	return upsert(d, ctx, "SaveReadNotices", notices...)
}
