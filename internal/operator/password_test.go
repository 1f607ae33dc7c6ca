package operator

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	salt, err := GenerateSaltHex()
	if err != nil {
		t.Fatalf("GenerateSaltHex: %v", err)
	}
	hash, err := HashPassword("p@ssw0rd", salt)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}
	if !VerifyPassword("p@ssw0rd", salt, hash) {
		t.Fatalf("expected verify ok")
	}
	if VerifyPassword("wrong", salt, hash) {
		t.Fatalf("expected verify fail")
	}
}

func TestRolesJoinAndSplit(t *testing.T) {
	joined := RolesJoin([]string{" operator ", "", "admin"})
	if joined != "operator,admin" {
		t.Fatalf("unexpected joined roles: %q", joined)
	}
	o := Operator{Roles: joined}
	roles := o.RolesSlice()
	if len(roles) != 2 || roles[0] != "operator" || roles[1] != "admin" {
		t.Fatalf("unexpected roles: %#v", roles)
	}
}
