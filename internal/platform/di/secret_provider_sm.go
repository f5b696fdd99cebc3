// internal/platform/di/secret_provider_sm.go
package di

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// loadSecret fetches the latest version of a Secret Manager secret.
// Used for the SendGrid key when it is not provided via environment.
func loadSecret(ctx context.Context, projectID, secretName string) (string, error) {
	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return "", errors.New("di: projectID is empty")
	}
	sid := strings.TrimSpace(secretName)
	if sid == "" {
		return "", errors.New("di: secret name is empty")
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer sm.Close()

	name := "projects/" + prj + "/secrets/" + sid + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("di: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("di: empty secret payload (" + name + ")")
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
