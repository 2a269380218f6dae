package common

// Settings is the yaml-backed node configuration, unmarshalled by viper.
type Settings struct {
	Network struct {
		Port     uint16
		ExtAddr  string
		MinPeers int
	}
	Storage struct {
		Dir string
	}
	Liveness struct {
		// Me is this node's index in the committee file, -1 for observers.
		Me            int
		CommitteePath string
		PeerPath      string
		// BlockDelta is the block clock period in milliseconds.
		BlockDelta int
		// SessionLength is the session length in blocks.
		SessionLength int
	}
}
