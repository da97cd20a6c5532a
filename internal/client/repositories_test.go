package client

import (
	"context"
	"errors"
	"testing"
)

func TestListRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the repository list", func(t *testing.T) {
		f := newFakeNexus(t)
		f.setRepositories([]map[string]interface{}{
			{
				"name":   "pypi-internal",
				"format": "pypi",
				"type":   "hosted",
				"url":    "https://nexus.example.com/repository/pypi-internal",
				"attributes": map[string]interface{}{
					"storage": map[string]interface{}{"blobStoreName": "default"},
				},
			},
			{"name": "maven-central", "format": "maven2", "type": "proxy", "url": "https://nexus.example.com/repository/maven-central"},
		})

		repos, err := f.client(t, testCreds).ListRepositories(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repos) != 2 {
			t.Fatalf("expected 2 repositories, got %d", len(repos))
		}
		if repos[0].Name != "pypi-internal" || repos[0].Format != "pypi" || repos[0].Type != "hosted" {
			t.Errorf("unexpected first repository: %+v", repos[0])
		}
		storage, ok := repos[0].Attributes["storage"].(map[string]interface{})
		if !ok || storage["blobStoreName"] != "default" {
			t.Errorf("attributes not preserved: %+v", repos[0].Attributes)
		}
		if got := len(f.queries()); got != 0 {
			t.Errorf("listing repositories should not search, got %d searches", got)
		}
	})

	t.Run("object instead of array is a decode error", func(t *testing.T) {
		f := newFakeNexus(t)
		f.setRepositories(map[string]string{"items": "nope"})

		_, err := f.client(t, testCreds).ListRepositories(ctx)
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv(DefaultUsernameEnv, "")
		f := newFakeNexus(t)

		_, err := f.client(t, EnvCredentials{}).ListRepositories(ctx)
		if !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
		if f.requestCount() != 0 {
			t.Errorf("expected no requests, got %d", f.requestCount())
		}
	})
}

func TestStatus(t *testing.T) {
	f := newFakeNexus(t)
	if err := f.client(t, testCreds).Status(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := StaticCredentials{Username: "nobody", Password: "x"}
	if err := f.client(t, bad).Status(context.Background()); !errors.Is(err, ErrHTTPStatus) {
		t.Errorf("expected ErrHTTPStatus, got %v", err)
	}
}
