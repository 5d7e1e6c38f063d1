package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/stashbox-hq/stashbox-transfer/internal/config"
	"github.com/stashbox-hq/stashbox-transfer/internal/domain"
	"github.com/stashbox-hq/stashbox-transfer/internal/logger"
	"github.com/stashbox-hq/stashbox-transfer/pkg/filestore"
	"github.com/stashbox-hq/stashbox-transfer/pkg/httpclient"
	"github.com/stashbox-hq/stashbox-transfer/pkg/notify"
	"github.com/stashbox-hq/stashbox-transfer/pkg/profiles"
)

// Transfer wires together the storage profile, the file client, and the
// notification fanout, and executes transfer operations.
type Transfer struct {
	cfg     *config.Config
	profile profiles.Profile
	client  *filestore.Client
	fanout  *notify.Fanout
	log     logger.Logger
}

// NewTransfer builds a transfer runtime from config files. profileID selects
// the endpoint; empty falls back to the registry default.
func NewTransfer(ctx context.Context, cfg *config.Config, profileID string, log logger.Logger) (*Transfer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	profileReg, err := profiles.Load(cfg.ProfilesFile)
	if err != nil {
		return nil, fmt.Errorf("load profiles registry: %w", err)
	}

	profile, err := selectProfile(profileReg, profileID)
	if err != nil {
		return nil, err
	}
	log.InfoObj("profile selected", "profile_meta", map[string]any{
		"id":       profile.ID,
		"base_url": profile.BaseURL,
	})

	timeout := cfg.HTTPTimeout
	if t := profile.Timeout(); t > 0 {
		timeout = t
	}
	transport := httpclient.NewRestyClient(timeout)

	client, err := filestore.New(filestore.Config{
		BaseURL:        profile.BaseURL,
		EndpointPath:   profile.EndpointPath,
		Headers:        profile.Headers,
		DebugResponses: cfg.DebugResponses,
	}, transport, filestore.ExtensionResolver{}, log)
	if err != nil {
		return nil, fmt.Errorf("build file client: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Transfer{
		cfg:     cfg,
		profile: profile,
		client:  client,
		fanout:  fanout,
		log:     log,
	}, nil
}

// selectProfile resolves the requested profile id, falling back to the
// registry default when the id is blank.
func selectProfile(reg *profiles.Registry, profileID string) (profiles.Profile, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID != "" {
		profile, ok := reg.ByID(profileID)
		if !ok {
			return profiles.Profile{}, fmt.Errorf("unknown profile %q", profileID)
		}
		return profile, nil
	}

	profile, ok := reg.Default()
	if !ok {
		return profiles.Profile{}, fmt.Errorf("no default profile configured")
	}
	return profile, nil
}

// buildFanout assembles the notification fanout. A missing notifiers file
// disables announcements rather than failing the runtime.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*notify.Fanout, error) {
	if strings.TrimSpace(cfg.NotifiersFile) == "" {
		log.DebugObj("notifications disabled", "notifiers_file", cfg.NotifiersFile)
		return notify.NewFanout(nil), nil
	}

	notifierReg, err := notify.LoadRegistry(cfg.NotifiersFile)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}

	enabled := notifierReg.Enabled()
	sinks, err := notify.BuildAll(ctx, notify.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}

	fanout := notify.NewFanout(sinks)
	summaries := make([]map[string]string, 0, len(enabled))
	for _, sinkCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count":     fanout.Size(),
		"notifiers": summaries,
	})
	return fanout, nil
}

// Profile returns the storage profile the runtime operates against.
func (t *Transfer) Profile() profiles.Profile {
	if t == nil {
		return profiles.Profile{}
	}
	return t.profile
}

// Get resolves the download URL for a stored file.
func (t *Transfer) Get(ctx context.Context, key string) (domain.File, error) {
	if t == nil || t.client == nil {
		return domain.File{}, fmt.Errorf("transfer runtime is not initialized")
	}

	url, err := t.client.GetFile(ctx, key)
	if err != nil {
		return domain.File{}, err
	}

	file := domain.File{Key: strings.TrimSpace(key), URL: url}
	t.log.InfoObj("file url resolved", "file", file)
	return file, nil
}

// Put uploads the local file at path under key and announces the transfer.
func (t *Transfer) Put(ctx context.Context, key, path string) (domain.File, error) {
	if t == nil || t.client == nil {
		return domain.File{}, fmt.Errorf("transfer runtime is not initialized")
	}

	start := time.Now()
	stored, err := t.client.PutFile(ctx, key, path)
	if err != nil {
		return domain.File{}, err
	}

	file := domain.File{Key: stored}
	t.log.InfoObj("file uploaded", "upload_meta", map[string]any{
		"key":        file.Key,
		"path":       path,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	t.announce(ctx, notify.OperationUpload, file)
	return file, nil
}

// PutMany uploads every local path, deriving each key from the file name.
// Failures do not stop the batch; they are aggregated into the returned error.
func (t *Transfer) PutMany(ctx context.Context, paths []string) ([]domain.File, error) {
	if t == nil || t.client == nil {
		return nil, fmt.Errorf("transfer runtime is not initialized")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	files := make([]domain.File, 0, len(paths))
	errs := make([]error, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		file, err := t.Put(ctx, filepath.Base(path), path)
		if err != nil {
			errs = append(errs, fmt.Errorf("upload %q: %w", path, err))
			t.log.ErrorObj("batch upload entry failed", "upload_error", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		files = append(files, file)
	}

	return files, errors.Join(errs...)
}

// Delete removes the stored file for key and announces the transfer.
func (t *Transfer) Delete(ctx context.Context, key string) (domain.File, error) {
	if t == nil || t.client == nil {
		return domain.File{}, fmt.Errorf("transfer runtime is not initialized")
	}

	deleted, err := t.client.DeleteFile(ctx, key)
	if err != nil {
		return domain.File{}, err
	}

	file := domain.File{Key: deleted}
	t.log.InfoObj("file deleted", "file", file)
	t.announce(ctx, notify.OperationDelete, file)
	return file, nil
}

// announce fans the event out to configured sinks. Delivery failures are
// logged, never surfaced to the caller.
func (t *Transfer) announce(ctx context.Context, operation string, file domain.File) {
	if t.fanout.Size() == 0 {
		return
	}

	evt := notify.NewEvent(operation, t.profile.ID, file)
	delivered, err := t.fanout.Notify(ctx, evt)
	if err != nil {
		t.log.WarnObj("transfer announcement failed", "notify_result", map[string]any{
			"operation": operation,
			"key":       file.Key,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	t.log.DebugObj("transfer announced", "notify_result", map[string]any{
		"operation": operation,
		"key":       file.Key,
		"delivered": delivered,
	})
}
