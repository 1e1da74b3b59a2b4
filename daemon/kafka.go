// Kafka announcements of index refreshes.  When a rescan changes the on-disk
// picture of a subsystem, a small JSON event is produced on the topic
// "hk.<subsystem>.refresh" so that downstream consumers (dashboards, caches)
// can invalidate instead of polling.  Production is asynchronous and delivery
// failures are soft: an unreachable broker must never stall a query.

package daemon

import (
	"context"
	"encoding/json"

	"github.com/twmb/franz-go/pkg/kgo"

	"hkmond/common"
)

type kafkaNotifier struct {
	cl *kgo.Client
}

func newKafkaNotifier(broker string) (*kafkaNotifier, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, err
	}
	return &kafkaNotifier{cl: cl}, nil
}

type refreshEvent struct {
	Subsystem string `json:"subsystem"`
	Files     int    `json:"files"`
	MinTime   int64  `json:"minTime"`
	MaxTime   int64  `json:"maxTime"`
}

func (kn *kafkaNotifier) RefreshUpdated(subsystem string, files int, bounds common.Timebound) {
	payload, err := json.Marshal(&refreshEvent{
		Subsystem: subsystem,
		Files:     files,
		MinTime:   bounds.Earliest,
		MaxTime:   bounds.Latest,
	})
	if err != nil {
		panic("Unexpected")
	}
	record := &kgo.Record{
		Topic: "hk." + subsystem + ".refresh",
		Key:   []byte(subsystem),
		Value: payload,
	}
	kn.cl.Produce(context.Background(), record, func(_ *kgo.Record, err error) {
		if err != nil {
			common.Log.Warningf("Kafka announcement for %s failed: %v", subsystem, err)
		}
	})
}

func (kn *kafkaNotifier) Close() {
	kn.cl.Close()
}
