package launcher

import "errors"

// ServerType distinguishes how a tool server talks to the client.
type ServerType string

const (
	TypeStdio ServerType = "stdio"
	TypeSSE   ServerType = "sse"
)

// WorkspacePlaceholder is the literal token in server commands that is
// replaced with the configured workspace path at launch time. Replacement
// is plain substring substitution, so the token may appear mid-string.
const WorkspacePlaceholder = "${workspaceFolder}"

// Sentinel errors for server configuration validation.
var (
	ErrMissingCommand = errors.New("server config missing command")
	ErrMissingArgs    = errors.New("server config missing args")
)

// ServerConfig describes one tool server to launch. Configs are read from
// an external file and passed in per Launch call; the supervisor does not
// retain them.
type ServerConfig struct {
	Name    string     `json:"name"`
	Type    ServerType `json:"type"`
	Command []string   `json:"command"`
	Args    []string   `json:"args"`
}

// serversFile is the on-disk shape of the server configuration document.
type serversFile struct {
	Servers []ServerConfig `json:"servers"`
}
