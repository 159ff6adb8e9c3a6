package paymentgateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature проверяет подпись callback-а шлюза.
// Подпись - hex(HMAC-SHA256("{order_id}|{payment_id}", keySecret)).
// Клиентский SDK шлюза работает в браузере и может быть подменён, поэтому
// серверная проверка подписи - единственное доказательство оплаты.
// На любой некорректный вход возвращает false, никогда не паникует.
func (c *Client) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return false
	}

	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := mac.Sum(nil)

	// Сравнение за константное время - защита от timing-атак
	return hmac.Equal(expected, supplied)
}
