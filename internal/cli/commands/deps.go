package commands

import (
	"MoodKeeper/internal/cli/api"
	"MoodKeeper/internal/cli/bootstrap"
	"MoodKeeper/internal/cli/repo"
	fsrepo "MoodKeeper/internal/cli/repo/fs"
	"MoodKeeper/internal/cli/service"
	"MoodKeeper/internal/config"
)

// deps - клиентские зависимости одной команды.
type deps struct {
	local   fsrepo.FSStore
	client  *api.Client
	session *service.SessionService
}

func newDeps(cfg *config.Config) deps {
	local := fsrepo.NewFSStore(cfg.StateDir)
	client := api.NewClient(cfg.ServerURL, local)
	return deps{
		local:   local,
		client:  client,
		session: service.NewSessionService(client, local, local, log),
	}
}

// cache открывает офлайн-кэш текущего пользователя. Если открыть не удалось, возвращает nil.
// Возвращённый cleanup нужно вызвать всегда.
func (d deps) cache(cfg *config.Config) (repo.RecordCache, func()) {
	c, closeCache, err := bootstrap.OpenRecordCache(cfg, d.local)
	if err != nil {
		log.Debugw("offline cache unavailable", "err", err)
		return nil, func() {}
	}
	return c, func() {
		if err := closeCache(); err != nil {
			log.Warnw("close offline cache", "err", err)
		}
	}
}

func (d deps) journal(cfg *config.Config) (*service.JournalService, func()) {
	c, done := d.cache(cfg)
	return service.NewJournalService(d.client, c, log), done
}

func (d deps) account(cfg *config.Config) (*service.AccountService, func()) {
	c, done := d.cache(cfg)
	return service.NewAccountService(d.client, d.client, d.session, c, log), done
}
