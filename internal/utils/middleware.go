package utils

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// CommonMetadataMiddleware stamps every outbound message with the emitting
// service and a receive timestamp so cross-service traces line up.
func CommonMetadataMiddleware(serviceName string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil {
				return nil, err
			}
			receivedAt := time.Now().UTC().Format(time.RFC3339Nano)
			for _, out := range produced {
				out.Metadata.Set("emitted_by", serviceName)
				out.Metadata.Set("handled_at", receivedAt)
			}
			return produced, nil
		}
	}
}
