package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/toolshare/internal/pkg/constants"
)

// SettlementStreams returns the streams the payments service publishes to
// and reads from.
func SettlementStreams() []jetstream.StreamConfig {
	return []jetstream.StreamConfig{
		{
			Name: constants.StreamSettlement,
			Subjects: []string{
				"payment.>",
				"refund.>",
				"deposit.>",
				"payout.>",
			},
			Retention:  jetstream.LimitsPolicy,
			Storage:    jetstream.FileStorage,
			MaxAge:     30 * 24 * time.Hour,
			Duplicates: 10 * time.Minute,
			Discard:    jetstream.DiscardOld,
		},
		{
			Name:       constants.StreamRental,
			Subjects:   []string{"rental.>"},
			Retention:  jetstream.LimitsPolicy,
			Storage:    jetstream.FileStorage,
			MaxAge:     7 * 24 * time.Hour,
			Duplicates: 10 * time.Minute,
			Discard:    jetstream.DiscardOld,
		},
	}
}
