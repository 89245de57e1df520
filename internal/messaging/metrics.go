package messaging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesSent = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "messaging_messages_sent_total",
		Help: "Total number of chat messages stored",
	},
)
