package rabbitmq

// Queue and routing key of the premium-expiry reminder pipeline.
const (
	PremiumExpiringQueue      = "notifications.premium-expiring"
	PremiumExpiringRoutingKey = "premium.expiring"
)

// QueueConfig binds one queue to the notifications exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues lists every queue the notification workers use.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: PremiumExpiringQueue, RoutingKey: PremiumExpiringRoutingKey},
	}
}
