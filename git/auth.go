package git

import (
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
)

// SSHKeyOption configures SSHKeyAuth and SSHKeyFile.
type SSHKeyOption func(*sshKeyOptions)

type sshKeyOptions struct {
	password string
}

// WithSSHPassword sets the passphrase of an encrypted key.
func WithSSHPassword(password string) SSHKeyOption {
	return func(o *sshKeyOptions) {
		o.password = password
	}
}

// SSHKeyAuth builds SSH public-key credentials from a PEM encoded private
// key.
func SSHKeyAuth(user string, pemBytes []byte, opts ...SSHKeyOption) (Auth, error) {
	o := &sshKeyOptions{}
	for _, opt := range opts {
		opt(o)
	}

	keys, err := ssh.NewPublicKeys(user, pemBytes, o.password)
	if err != nil {
		return nil, fserrors.Wrap(err, fserrors.CodeInvalid, "parse SSH key")
	}
	return keys, nil
}

// SSHKeyFile reads a private key from the local disk and passes it to
// SSHKeyAuth.
func SSHKeyFile(user, keyPath string, opts ...SSHKeyOption) (Auth, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, wrapError(err, "read SSH key "+keyPath)
	}
	return SSHKeyAuth(user, pemBytes, opts...)
}

// BasicAuth builds HTTP basic credentials. Hosts that take tokens usually
// accept any non-empty username with the token as password.
func BasicAuth(username, password string) Auth {
	return &http.BasicAuth{Username: username, Password: password}
}

// EmptyAuth returns no credentials, for anonymous access.
func EmptyAuth() Auth {
	return nil
}
