// Minimal end-to-end integration test for the proposals API.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/google/uuid"
)

var baseURL = getenv("API_URL", "http://localhost:8080/v1")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	msk, err := schnorrkel.GenerateMiniSecretKey()
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}
	sk := msk.ExpandEd25519()
	pub := msk.Public().Encode()
	addr := "0x" + hex.EncodeToString(pub[:])

	nonce := challenge(addr)
	token := verify(addr, sign(sk, nonce))

	id := createProposal(token)
	checkProposal(id)
	checkListing(id)

	castVote(token, id)
	checkVote(token, id)

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- auth

func challenge(addr string) string {
	var resp struct{ Nonce string }
	doJSON("POST", "/auth/challenge", map[string]any{
		"address": addr,
		"method":  "polkadotjs",
	}, &resp, http.StatusOK)
	if resp.Nonce == "" {
		log.Fatal("challenge: empty nonce")
	}
	return resp.Nonce
}

func sign(sk *schnorrkel.SecretKey, nonce string) string {
	ctx := schnorrkel.NewSigningContext([]byte("substrate"), []byte(nonce))
	sig, err := sk.Sign(ctx)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	enc := sig.Encode()
	return "0x" + hex.EncodeToString(enc[:])
}

func verify(addr, signature string) string {
	var resp struct{ Token string }
	doJSON("POST", "/auth/verify", map[string]any{
		"address":   addr,
		"signature": signature,
	}, &resp, http.StatusOK)
	if resp.Token == "" {
		log.Fatal("verify: empty token")
	}
	return resp.Token
}

// ----------------------------- proposals

func createProposal(tok string) uint64 {
	var resp struct{ ID uint64 }
	doAuth(tok, "POST", "/proposals", map[string]any{
		"title":       "integration-test " + uuid.NewString()[:8],
		"description": "created by the API smoke test",
		"deadline":    time.Now().Add(24 * time.Hour).Unix(),
		"details":     "integration-test details " + uuid.NewString(),
	}, &resp, http.StatusCreated)
	if resp.ID == 0 {
		log.Fatal("create: zero proposal id")
	}
	return resp.ID
}

func checkProposal(id uint64) {
	var p struct {
		ID   uint64
		Open bool
	}
	doJSON("GET", fmt.Sprintf("/proposals/%d", id), nil, &p, http.StatusOK)
	if p.ID != id || !p.Open {
		log.Fatalf("proposal %d: unexpected state %+v", id, p)
	}
}

func checkListing(id uint64) {
	var resp struct {
		Items []struct{ ID uint64 }
		Total uint64
	}
	doJSON("GET", "/proposals?status=open", nil, &resp, http.StatusOK)
	for _, it := range resp.Items {
		if it.ID == id {
			return
		}
	}
	log.Fatal("listing: created proposal not in open page")
}

// ----------------------------- votes

func castVote(tok string, id uint64) {
	doAuth(tok, "POST", "/votes", map[string]any{
		"proposalId": id,
		"choice":     "yes",
	}, nil, http.StatusCreated)
}

func checkVote(tok string, id uint64) {
	var resp struct{ Choice string }
	doAuth(tok, "GET", fmt.Sprintf("/votes/%d", id), nil, &resp, http.StatusOK)
	if resp.Choice != "yes" {
		log.Fatalf("votes: want yes got %q", resp.Choice)
	}
}

// ----------------------------- helpers

func doAuth(token, method, path string, body, out any, want int) {
	doReq(method, path, token, body, out, want)
}

func doJSON(method, path string, body, out any, want int) {
	doReq(method, path, "", body, out, want)
}

func doReq(method, path, token string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
