package utils

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
)

const MaxRoomImages = 4

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(user.ID)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}

func TempDir() string {
	if dir := os.Getenv("TEMP_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// StageRoomImages saves up to MaxRoomImages multipart files under
// fresh uuid keys, ready for the catalog to push to the image store.
func StageRoomImages(ctx *gin.Context, files []*multipart.FileHeader) ([]common.RoomImage, error) {
	if len(files) > MaxRoomImages {
		return nil, common.NewValidationError("at most %d images are allowed", MaxRoomImages)
	}
	images := make([]common.RoomImage, 0, len(files))
	for _, file := range files {
		key := fmt.Sprintf("rooms/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		dst := path.Join(TempDir(), path.Base(key))
		if err := ctx.SaveUploadedFile(file, dst); err != nil {
			log.Printf("Could not save uploaded file [%s]: %s\n", file.Filename, err.Error())
			return nil, err
		}
		images = append(images, common.RoomImage{Key: key, Path: dst})
	}
	return images, nil
}

// SendBookingConfirmation emails the guest their reference code with
// a QR image attached. Best-effort; a failure is logged, never
// surfaced to the booking flow.
func SendBookingConfirmation(booking *models.Booking) {
	qrc, err := qrcode.New(booking.ReferenceCode)
	if err != nil {
		log.Printf("Could not generate confirmation QR for booking [%d]: %s\n", booking.ID, err.Error())
		return
	}
	qrPath := path.Join(TempDir(), fmt.Sprintf("%s.jpeg", booking.ReferenceCode))
	if err := qrc.Save(qrPath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", qrPath, err.Error())
		return
	}
	defer os.Remove(qrPath)

	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking is confirmed.\n\nReference: %s\nCheck-in: %s\nCheck-out: %s\nNights: %d\nGuests: %d\n\nPlease present the attached code at the front desk.\n",
		booking.GuestName,
		booking.ReferenceCode,
		booking.CheckIn.Format(config.DATE_PARSE_FORMAT),
		booking.CheckOut.Format(config.DATE_PARSE_FORMAT),
		booking.Nights,
		booking.Guests,
	)
	err = lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: os.Getenv("MAIL_FROM_NAME"),
		To:       []string{booking.GuestEmail},
		Subject:  fmt.Sprintf("Booking confirmation %s", booking.ReferenceCode),
		Body:     body,
		Attach:   []string{qrPath},
	})
	if err != nil {
		log.Printf("Could not send confirmation email for booking [%d]: %s\n", booking.ID, err.Error())
	}
}

