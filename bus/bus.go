// bus/bus.go
package bus

import "sync"

// Topic is a path of tokens. Tokens are strings or ints. On the subscribe
// side, "+" matches exactly one token and "#" matches any remainder
// (including none); publishers use literal topics only.
type Topic []any

// T builds a topic from its tokens.
func T(parts ...any) Topic { return Topic(parts) }

const (
	WildOne = "+"
	WildAll = "#"
)

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

type node struct {
	children map[any]*node
	subs     []*Subscription
	retained *Message
}

// Bus is an in-process topic trie. Delivery is non-blocking: a full
// subscriber queue drops its oldest message.
type Bus struct {
	mu   sync.Mutex
	root *node
	qLen int
}

// NewBus creates a bus with the given per-subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{root: &node{}, qLen: queueLen}
}

func (n *node) child(tok any, create bool) *node {
	if n.children == nil {
		if !create {
			return nil
		}
		n.children = make(map[any]*node)
	}
	c, ok := n.children[tok]
	if !ok {
		if !create {
			return nil
		}
		c = &node{}
		n.children[tok] = c
	}
	return c
}

func push(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
	default:
		// drop oldest if queue full
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// Publish delivers msg to every subscription whose pattern matches its topic
// and stores it when retained. A retained message with a nil payload clears
// the stored message.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.match(b.root, msg.Topic, msg)

	if msg.Retained {
		n := b.root
		for _, tok := range msg.Topic {
			n = n.child(tok, true)
		}
		if msg.Payload == nil {
			n.retained = nil
		} else {
			n.retained = msg
		}
	}
}

func (b *Bus) match(n *node, rest Topic, msg *Message) {
	if h := n.child(WildAll, false); h != nil {
		for _, sub := range h.subs {
			push(sub, msg)
		}
	}
	if len(rest) == 0 {
		for _, sub := range n.subs {
			push(sub, msg)
		}
		return
	}
	if c := n.child(rest[0], false); c != nil {
		b.match(c, rest[1:], msg)
	}
	if c := n.child(WildOne, false); c != nil {
		b.match(c, rest[1:], msg)
	}
}

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	for _, tok := range sub.topic {
		n = n.child(tok, true)
	}
	n.subs = append(n.subs, sub)

	// Replay retained messages matching the pattern.
	b.replayRetained(b.root, sub.topic, sub)
}

func (b *Bus) replayRetained(n *node, pattern Topic, sub *Subscription) {
	if len(pattern) == 0 {
		if n.retained != nil {
			push(sub, n.retained)
		}
		return
	}
	switch pattern[0] {
	case WildAll:
		b.replaySubtree(n, sub)
	case WildOne:
		for _, c := range n.children {
			b.replayRetained(c, pattern[1:], sub)
		}
	default:
		if c := n.child(pattern[0], false); c != nil {
			b.replayRetained(c, pattern[1:], sub)
		}
	}
}

func (b *Bus) replaySubtree(n *node, sub *Subscription) {
	if n.retained != nil {
		push(sub, n.retained)
	}
	for _, c := range n.children {
		b.replaySubtree(c, sub)
	}
}

func (b *Bus) removeSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	var path []*node
	for _, tok := range sub.topic {
		c := n.child(tok, false)
		if c == nil {
			return
		}
		path = append(path, n)
		n = c
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
	// Prune empty nodes.
	for i := len(sub.topic) - 1; i >= 0; i-- {
		parent := path[i]
		key := sub.topic[i]
		child := parent.children[key]
		if len(child.subs) == 0 && len(child.children) == 0 && child.retained == nil {
			delete(parent.children, key)
		} else {
			break
		}
	}
}

// Connection scopes subscriptions to one owner so Disconnect can tear them
// all down.
type Connection struct {
	bus  *Bus
	mu   sync.Mutex
	subs []*Subscription
	id   string
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

// Reply publishes a response to req.ReplyTo, if the requester asked for one.
func (c *Connection) Reply(req *Message, payload any, retained bool) {
	if len(req.ReplyTo) == 0 {
		return
	}
	c.bus.Publish(&Message{Topic: req.ReplyTo, Payload: payload, Retained: retained})
}

func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.bus.addSubscription(sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.removeSubscription(sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions owned by this connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, sub := range subs {
		c.bus.removeSubscription(sub)
		close(sub.ch)
	}
}
