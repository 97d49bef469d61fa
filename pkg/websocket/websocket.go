package websocketPkg

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"github.com/gorilla/websocket"
	"log"
	"os"
	"sync"
	"time"
)

type ISpeechGateway interface {
	Transcribe(audio []byte, language string) (string, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type speechGatewayClient struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type transcribeRequest struct {
	Audio    string `json:"audio"`
	Language string `json:"language"`
}

type transcribeResponse struct {
	Transcript string `json:"transcript"`
	Error      string `json:"error,omitempty"`
}

func NewSpeechGateway() ISpeechGateway {
	client := &speechGatewayClient{
		pingInterval: 30 * time.Second,
		readTimeout:  15 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go func() {
		if err := client.Reconnect(); err != nil {
			log.Printf("Initial connection to speech gateway failed: %v. Will retry on demand.", err)
		} else {
			log.Printf("Successfully connected to speech gateway")
		}
	}()

	return client
}

func (c *speechGatewayClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *speechGatewayClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	url := os.Getenv("SPEECH_GATEWAY_WS_URL")
	if url == "" {
		return fmt.Errorf("speech gateway URL not configured")
	}

	log.Printf("Connecting to speech gateway at %s", url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn

	go c.keepAlive()

	return nil
}

func (c *speechGatewayClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		if conn == nil {
			return
		}

		err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Speech gateway ping failed: %v", err)
			c.mu.Lock()
			if c.conn == conn {
				c.conn.Close()
				c.conn = nil
			}
			c.mu.Unlock()
			return
		}
	}
}

func (c *speechGatewayClient) Transcribe(audio []byte, language string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		c.mu.Unlock()
		err := c.Reconnect()
		c.mu.Lock()
		if err != nil {
			return "", fmt.Errorf("speech gateway not connected: %w", err)
		}
	}

	req := transcribeRequest{
		Audio:    base64.StdEncoding.EncodeToString(audio),
		Language: language,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.conn.Close()
		c.conn = nil
		return "", fmt.Errorf("failed to send audio frame: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		c.conn.Close()
		c.conn = nil
		return "", fmt.Errorf("failed to read transcription: %w", err)
	}

	var resp transcribeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("invalid transcription response: %w", err)
	}

	if resp.Error != "" {
		return "", fmt.Errorf("transcription failed: %s", resp.Error)
	}

	return resp.Transcript, nil
}

func (c *speechGatewayClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
