package admin

import "testing"

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("s3cret")
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plain token")
	}
	if !VerifyAdminToken(hash, "s3cret") {
		t.Error("matching token rejected")
	}
	if VerifyAdminToken(hash, "wrong") {
		t.Error("wrong token accepted")
	}
	if VerifyAdminToken("", "s3cret") || VerifyAdminToken(hash, "") {
		t.Error("empty hash or token accepted")
	}
}

func TestLogAdminActionWithoutDB(t *testing.T) {
	if err := LogAdminAction(nil, "ops", "127.0.0.1", "/x", "noop", nil, true); err != nil {
		t.Fatalf("LogAdminAction without db: %v", err)
	}
}
