package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/VaibhavLohitashv/recipe-share/pubsub"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsCommand is what clients send: subscribe/unsubscribe to a channel.
// reviewAdded additionally needs the recipe id.
type wsCommand struct {
	Action   string `json:"action"`
	Channel  string `json:"channel"`
	RecipeID uint   `json:"recipeId,omitempty"`
}

// wsEvent is the outbound frame for a published payload.
type wsEvent struct {
	Channel  string      `json:"channel"`
	RecipeID uint        `json:"recipeId,omitempty"`
	Data     interface{} `json:"data"`
}

const (
	channelRecipeAdded = "recipeAdded"
	channelReviewAdded = "reviewAdded"
)

func topicFor(cmd wsCommand) (string, bool) {
	switch cmd.Channel {
	case channelRecipeAdded:
		return pubsub.TopicRecipeAdded, true
	case channelReviewAdded:
		if cmd.RecipeID == 0 {
			return "", false
		}
		return pubsub.TopicReviewAdded(cmd.RecipeID), true
	}
	return "", false
}

// HandleWebSocket upgrades the connection and multiplexes every topic the
// client subscribes to over it. Subscriptions live until the client
// unsubscribes or the connection closes.
func (ctl *Controller) HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	send := make(chan wsEvent, 16)
	done := make(chan struct{})
	subs := make(map[string]*pubsub.Subscription) // touched only by the read loop

	// single writer for the connection
	go func() {
		for {
			select {
			case ev := <-send:
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		for _, sub := range subs {
			sub.Close()
		}
		conn.Close()
	}()

	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}

		topic, ok := topicFor(cmd)
		if !ok {
			continue
		}

		switch cmd.Action {
		case "subscribe":
			if _, exists := subs[topic]; exists {
				continue
			}
			sub := ctl.Bus.Subscribe(topic)
			subs[topic] = sub
			go forward(sub, cmd, send, done)
		case "unsubscribe":
			if sub, exists := subs[topic]; exists {
				sub.Close()
				delete(subs, topic)
			}
		}
	}
}

// forward relays one subscription onto the connection's send channel until
// the subscription is closed or the connection goes away.
func forward(sub *pubsub.Subscription, cmd wsCommand, send chan<- wsEvent, done <-chan struct{}) {
	for msg := range sub.C() {
		ev := wsEvent{Channel: cmd.Channel, Data: msg.Payload}
		if cmd.Channel == channelReviewAdded {
			ev.RecipeID = cmd.RecipeID
		}
		select {
		case send <- ev:
		case <-done:
			return
		}
	}
}
