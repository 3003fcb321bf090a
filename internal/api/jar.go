package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// FileJar is a cookie jar that survives process restarts. It keeps the
// cookies set by one backend in a JSON file next to the session snapshot.
type FileJar struct {
	mu      sync.Mutex
	path    string
	base    *url.URL
	inner   *cookiejar.Jar
	cookies map[string]storedCookie
	now     func() time.Time
	logger  *slog.Logger
}

// JarOption configures a FileJar.
type JarOption func(*FileJar)

// WithJarLogger sets where failed cookie saves are reported.
func WithJarLogger(logger *slog.Logger) JarOption {
	return func(j *FileJar) {
		j.logger = logger
	}
}

// NewFileJar loads any cookies previously saved at path for baseURL.
func NewFileJar(path, baseURL string, opts ...JarOption) (*FileJar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &FileJar{
		path:    path,
		base:    base,
		inner:   inner,
		cookies: make(map[string]storedCookie),
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(j)
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *FileJar) load() error {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cookie file: %w", err)
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		// A damaged cookie file only costs a fresh login.
		return nil
	}
	now := j.now()
	restored := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		if !sc.Expires.IsZero() && !sc.Expires.After(now) {
			continue
		}
		j.cookies[sc.Name] = sc
		restored = append(restored, &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
		})
	}
	j.inner.SetCookies(j.base, restored)
	return nil
}

// SetCookies implements http.CookieJar and persists cookies for the base host.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	if u.Host != j.base.Host {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for _, c := range cookies {
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		if c.MaxAge < 0 || (!expires.IsZero() && !expires.After(now)) {
			delete(j.cookies, c.Name)
			continue
		}
		j.cookies[c.Name] = storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
	}
	if err := j.saveLocked(); err != nil {
		// The in-memory jar still works; only the next process loses the session.
		j.logger.Warn("failed to save cookies", "path", j.path, "error", err)
	}
}

// Cookies implements http.CookieJar.
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// Clear forgets every cookie and removes the file.
func (j *FileJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	expired := make([]*http.Cookie, 0, len(j.cookies))
	for name, c := range j.cookies {
		expired = append(expired, &http.Cookie{Name: name, Path: c.Path, MaxAge: -1})
	}
	j.inner.SetCookies(j.base, expired)
	j.cookies = make(map[string]storedCookie)
	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (j *FileJar) saveLocked() error {
	stored := make([]storedCookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		stored = append(stored, c)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0o600)
}

var _ http.CookieJar = (*FileJar)(nil)
