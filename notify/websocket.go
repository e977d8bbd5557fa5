package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/FabriBott/asset-token-nexus-platform/models"
)

const subscriptionBuffer = 16

type outboundMessage struct {
	Type string             `json:"type"`
	Data models.Transaction `json:"data"`
}

// TradeFeed streams settled trades to websocket subscribers. The
// marketplace publishes into it after settlement; browsers subscribe to
// refresh their order book and history views.
type TradeFeed struct {
	hub      *Hub[models.Transaction]
	upgrader websocket.Upgrader
}

func NewTradeFeed() *TradeFeed {
	return &TradeFeed{
		hub: NewHub[models.Transaction](),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish fans a settled trade out to every connected subscriber.
func (f *TradeFeed) Publish(trade models.Transaction) {
	f.hub.Broadcast(trade)
}

// Handler upgrades the connection and streams trades until the client
// goes away. One goroutine writes, one drains client frames to notice
// the disconnect; the tomb ties their lifetimes together.
func (f *TradeFeed) Handler(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := f.hub.Subscribe(subscriptionBuffer)
	var t tomb.Tomb

	t.Go(func() error {
		defer conn.Close()
		for {
			select {
			case <-t.Dying():
				return nil
			case trade := <-sub.C:
				if err := conn.WriteJSON(outboundMessage{Type: "trade", Data: trade}); err != nil {
					return err
				}
			}
		}
	})
	t.Go(func() error {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return err
			}
		}
	})

	if err := t.Wait(); err != nil {
		log.Debug().Err(err).Msg("trade feed subscriber disconnected")
	}
	f.hub.Unsubscribe(sub)
}
