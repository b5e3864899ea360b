package models

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSetPasswordCost(t *testing.T) {
	var u User
	if err := u.SetPassword("correct horse battery", bcrypt.MinCost); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("hash cost = %d, want configured %d", cost, bcrypt.MinCost)
	}

	if !u.CheckPassword("correct horse battery") {
		t.Error("CheckPassword rejected the original password")
	}
	if u.CheckPassword("wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
