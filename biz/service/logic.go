package service

import (
	"github.com/yi-nology/envprofile/biz/dal/db"
	"gorm.io/gorm"
)

// Logic contains business rules on top of data persistence.
type Logic struct {
	db             *gorm.DB
	profileDAO     *db.ProfileDAO
	publicationDAO *db.PublicationDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:             dbConn,
		profileDAO:     db.NewProfileDAO(),
		publicationDAO: db.NewPublicationDAO(),
	}
}
