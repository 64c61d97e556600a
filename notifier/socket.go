package notifier

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// clientMessage is what clients send on the live channel
type clientMessage struct {
	Event          string `json:"event"`
	UserID         uint   `json:"userId"`
	NotificationID uint   `json:"notificationId"`
}

// UpgradeRequired gates the websocket route: plain HTTP requests get a 426
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler for the live channel. A
// connection is anonymous until it announces a user id with a
// "register" event; only then does it join the presence registry.
func Handler(d *Dispatcher) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient(conn)
		var userID uint

		defer func() {
			if userID != 0 {
				d.registry.Unregister(userID, client)
				log.Printf("notifier: user %d disconnected", userID)
			}
			conn.Close()
		}()

		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}

			switch msg.Event {
			case "register":
				if msg.UserID == 0 {
					log.Println("notifier: no user id provided for registration")
					continue
				}
				userID = msg.UserID
				d.registry.Register(userID, client)
				log.Printf("notifier: user %d registered on live channel", userID)

				if err := client.WriteJSON(fiber.Map{
					"event":   EventConnectionEstablished,
					"message": "Connected to notification service",
					"userId":  userID,
				}); err != nil {
					return
				}

			case EventNotificationRead:
				// Advisory acknowledgement only; the persisted flag is
				// flipped through the mark-read endpoint.
				log.Printf("notifier: notification %d marked as read by user %d", msg.NotificationID, msg.UserID)
			}
		}
	})
}
