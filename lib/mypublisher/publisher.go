package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/bookstorebackend/lib/myevents"
	"github.com/MarcGrol/bookstorebackend/lib/mypubsub"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
	"github.com/MarcGrol/bookstorebackend/lib/myuuid"
)

type publisher struct {
	pubsub mypubsub.PubSub
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

func New(ps mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer) Publisher {
	return &publisher{
		pubsub: ps,
		nower:  nower,
		uuider: uuider,
	}
}

func (p *publisher) CreateTopic(c context.Context, topic string) error {
	return p.pubsub.CreateTopic(c, topic)
}

func (p *publisher) Publish(c context.Context, topic string, event myevents.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshalling event %s: %s", event.GetEventTypeName(), err)
	}

	envelope := myevents.EventEnvelope{
		UID:           p.uuider.Create(),
		CreatedAt:     p.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}

	envelopeJSON, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error marshalling envelope of event %s: %s", event.GetEventTypeName(), err)
	}

	return p.pubsub.Publish(c, topic, string(envelopeJSON))
}
