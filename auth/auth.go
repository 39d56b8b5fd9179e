package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"milonga/db"
	"milonga/globals"
	"milonga/middleware"
	"milonga/models"
	"milonga/mq"
	"milonga/rdx"
	"milonga/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	var existing models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"username": creds.Username}).Decode(&existing)
	if err == nil {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("Failed to hash password for user %s: %v", creds.Username, err)
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := models.User{
		UserID:        "u" + utils.GenerateID(10),
		Username:      creds.Username,
		Email:         creds.Email,
		Password:      string(hashedPassword),
		Role:          []string{"user"},
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", user.UserID), user.Username); err != nil {
		log.Warnf("Failed to cache username: %v", err)
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	mq.Emit("user-registered", mq.Index{EntityType: "user", EntityId: user.UserID, Method: "POST"})

	utils.SendResponse(w, http.StatusCreated, map[string]string{"userid": user.UserID}, "User registered successfully", nil)
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"username": creds.Username}).Decode(&storedUser)
	if err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(creds.Password)); err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	claims := &middleware.Claims{
		Username:    storedUser.Username,
		UserID:      storedUser.UserID,
		Role:        storedUser.Role,
		Permissions: storedUser.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		http.Error(w, "Error generating refresh token", http.StatusInternalServerError)
		return
	}

	_, err = db.UserCollection.UpdateOne(
		r.Context(),
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(refreshToken),
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
			"last_login":     time.Now(),
		}},
	)
	if err != nil {
		http.Error(w, "Failed to store refresh token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Warnf("Failed to cache session token: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
		"role":         storedUser.Role,
	}, "Login successful", nil)
}

func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := rdx.RdxHdel("tokki", claims.UserID); err != nil {
		log.Errorf("Error removing token from Redis: %v", err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	mq.Emit("user-loggedout", mq.Index{EntityType: "user", EntityId: claims.UserID})

	utils.SendResponse(w, http.StatusOK, nil, "User logged out successfully", nil)
}

// RefreshToken exchanges a valid refresh token for a fresh access token. The
// stored refresh token is rotated on every use.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": body.UserID}).Decode(&storedUser)
	if err != nil {
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	if storedUser.RefreshToken == "" ||
		storedUser.RefreshToken != hashToken(body.RefreshToken) ||
		time.Now().After(storedUser.RefreshExpiry) {
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	claims := &middleware.Claims{
		Username:    storedUser.Username,
		UserID:      storedUser.UserID,
		Role:        storedUser.Role,
		Permissions: storedUser.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	newTokenString, err := newToken.SignedString(globals.JwtSecret)
	if err != nil {
		http.Error(w, "Failed to refresh token", http.StatusInternalServerError)
		return
	}

	newRefresh, err := generateRefreshToken()
	if err != nil {
		http.Error(w, "Error generating refresh token", http.StatusInternalServerError)
		return
	}

	_, err = db.UserCollection.UpdateOne(
		r.Context(),
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(newRefresh),
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
		}},
	)
	if err != nil {
		http.Error(w, "Failed to rotate refresh token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, newTokenString); err != nil {
		log.Warnf("Error updating token in Redis: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        newTokenString,
		"refreshToken": newRefresh,
	}, "Token refreshed successfully", nil)
}

// Me returns the profile for the authenticated user.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	user.Password = ""

	utils.SendResponse(w, http.StatusOK, user, "OK", nil)
}

func generateRefreshToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
