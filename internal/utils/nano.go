package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	RequestIDSize  = 16
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RequestID returns a short random identifier used to correlate log lines.
func RequestID() string {
	return NanoIDSize(RequestIDSize)
}

func NanoIDSize(size int) string {
	if size == 0 {
		size = RequestIDSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
