package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

const testSecret = "test-secret-that-is-long-enough!!!!!"

type mockUserRepository struct {
	users  map[string]*auth.User
	hashes map[string]string
	byID   map[int64]*auth.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*auth.User),
		hashes: make(map[string]string),
		byID:   make(map[int64]*auth.User),
	}
}

func (m *mockUserRepository) addUser(u *auth.User, password string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.users[u.Email] = u
	m.hashes[u.Email] = string(hash)
	if active {
		m.byID[u.ID] = u
	}
}

func (m *mockUserRepository) GetCredentialsByEmail(email string) (*auth.User, string, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, "", internal.ErrUserNotFound
	}
	return u, m.hashes[email], nil
}

func (m *mockUserRepository) GetActiveByID(userID int64) (*auth.User, error) {
	u, ok := m.byID[userID]
	if !ok {
		return nil, internal.ErrUserInactive
	}
	return u, nil
}

var _ = Describe("AuthService", func() {
	var (
		service *auth.Service
		repo    *mockUserRepository
		admin   *auth.User
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		admin = &auth.User{ID: 1, Name: "Ada Admin", Email: "admin@worktrack.local", Role: auth.RoleAdmin}
		repo.addUser(admin, "secret123", true)

		tokenGen := auth.NewJWTTokenGenerator(testSecret, time.Hour)
		service = auth.NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("should issue a token carrying the user identity", func() {
			resp, err := service.Authenticate(auth.LoginDTO{
				Email:    "admin@worktrack.local",
				Password: "secret123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Token).ToNot(BeEmpty())
			Expect(resp.ID).To(Equal(admin.ID))
			Expect(resp.Email).To(Equal(admin.Email))
			Expect(resp.Role).To(Equal("ADMIN"))

			claims, err := service.ValidateAccessToken(resp.Token)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal(admin.ID))
			Expect(claims.Role).To(Equal("ADMIN"))
			Expect(claims.Name).To(Equal(admin.Name))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "admin@worktrack.local",
				Password: "wrong",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email with the same error", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@worktrack.local",
				Password: "secret123",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an empty payload", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject tokens signed with another secret", func() {
			otherGen := auth.NewJWTTokenGenerator("another-secret-that-is-long-enough!!", time.Hour)
			token, err := otherGen.GenerateToken(admin)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject expired tokens", func() {
			expiredGen := &auth.JWTTokenGenerator{Secret: []byte(testSecret), TokenTTL: -time.Hour}
			token, err := expiredGen.GenerateToken(admin)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})
	})

	Describe("GetActiveUser", func() {
		It("should reject users that were deactivated after token issue", func() {
			inactive := &auth.User{ID: 9, Name: "Gone Guy", Email: "gone@worktrack.local", Role: auth.RoleOperator}
			repo.addUser(inactive, "secret123", false)

			_, err := service.GetActiveUser(9)
			Expect(err).To(Equal(internal.ErrUserInactive))
		})
	})

	Describe("HashPassword", func() {
		It("should produce a hash that verifies", func() {
			hash, err := service.HashPassword("swordfish")
			Expect(err).ToNot(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("swordfish"))).To(Succeed())
		})
	})
})
