package utils

import (
	"log"
	"time"

	"tutorme/config"

	"github.com/go-resty/resty/v2"
)

// SendPaymentText sends a payment confirmation SMS through the local
// text API. No-op when the API or the mobile number is not configured;
// a failed send is logged and otherwise ignored.
func SendPaymentText(mobile, message string) {
	cfg := config.AppConfig
	if cfg.LocalTextApiUrl == "" || mobile == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().
			SetFormData(map[string]string{
				"apikey":  cfg.LocalTextApi,
				"mobile":  mobile,
				"message": message,
			}).
			Post(cfg.LocalTextApiUrl)
		if err != nil {
			log.Printf("Error sending payment SMS to %s: %v", mobile, err)
			return
		}
		if resp.StatusCode() != 200 {
			log.Printf("Payment SMS to %s failed: %s", mobile, resp.String())
		}
	}()
}
