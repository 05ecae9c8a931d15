package mq

import amqp "github.com/rabbitmq/amqp091-go"

// delivererChannel is the part of *amqp.Channel the consumer needs.
type delivererChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Cancel(consumer string, noWait bool) error
}
