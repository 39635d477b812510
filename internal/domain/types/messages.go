package types

// Envelope is the output of one hybrid encryption. Every field is standard
// base64 text and must be transported verbatim.
type Envelope struct {
	Ciphertext        string `json:"data"`
	Nonce             string `json:"iv"`
	WrappedSessionKey string `json:"key"`
}
