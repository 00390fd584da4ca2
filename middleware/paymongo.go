package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// PayMongoWebhookAuth verifies the Paymongo-Signature header against the raw
// request body. The header carries "t=<timestamp>,te=<test sig>,li=<live sig>"
// and the signature is HMAC-SHA256 of "<timestamp>.<body>" under the webhook
// secret. Sandbox/dev mode skips verification.
func PayMongoWebhookAuth() gin.HandlerFunc {
	secretKey := os.Getenv("PAYMONGO_WEBHOOK_SECRET")
	mode := strings.ToLower(os.Getenv("PAYMONGO_MODE"))

	if secretKey == "" && mode != "sandbox" && mode != "dev" {
		panic("PAYMONGO_WEBHOOK_SECRET is not set")
	}

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			c.Abort()
			return
		}
		// Hand the body back to the handler untouched.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if mode == "sandbox" || mode == "dev" {
			log.Println("Sandbox/dev mode: skipping PayMongo webhook signature verification")
			c.Next()
			return
		}

		header := c.GetHeader("Paymongo-Signature")
		if header == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing Paymongo-Signature header"})
			c.Abort()
			return
		}

		var timestamp, liveSig, testSig string
		for _, part := range strings.Split(header, ",") {
			kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch kv[0] {
			case "t":
				timestamp = kv[1]
			case "te":
				testSig = kv[1]
			case "li":
				liveSig = kv[1]
			}
		}

		provided := liveSig
		if provided == "" {
			provided = testSig
		}
		if timestamp == "" || provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "malformed Paymongo-Signature header"})
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(secretKey))
		mac.Write([]byte(timestamp + "."))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(calculated)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
