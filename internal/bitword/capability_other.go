//go:build !amd64 && !arm64

package bitword

func init() {
	initCapabilities()
}
