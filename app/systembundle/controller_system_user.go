package systembundle

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"rvmtrack_backend/app/core"
)

// Login checks the credentials, creates a session row and puts the session
// token into the in-memory session map the auth middleware reads from.
func (c *SystemController) Login(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	var user core.User
	err := decoder.Decode(&user)
	if err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	if len(user.PasswordX) == 0 {
		loginError := make(map[string]string)
		loginError["login"] = "failed"
		c.SendJSON(w, loginError, http.StatusUnauthorized)
		return
	}

	c.ormDB.Where("username=? AND password=?", user.Username, c.GetMD5Hash(user.PasswordX)).First(&user)

	if user.ID == 0 {
		loginError := make(map[string]string)
		loginError["login"] = "failed"
		c.SendJSON(w, loginError, http.StatusUnauthorized)
		return
	} else if !user.IsActive {
		c.HandleAccountLockedError(errors.New("Account locked"), w)
		return
	}

	accountsSession := SystemAccountsSession{}
	accountsSession.SessionToken = uuid.New().String()
	accountsSession.AccountId = user.ID
	accountsSession.LoginTime = core.NullTime{Time: time.Now(), Valid: true}
	c.ormDB.Set("gorm:save_associations", false).Create(&accountsSession)

	user.Token = accountsSession.SessionToken
	user.PasswordX = ""
	(*c.Controller.Users)[user.Token] = user

	c.SendJSON(w, &user, http.StatusOK)
}

func (c *SystemController) Logout(w http.ResponseWriter, r *http.Request) {
	ok, user := c.GetUser(w, r)
	if !ok {
		return
	}

	c.ormDB.Where("session_token = ?", user.Token).Delete(&SystemAccountsSession{})
	delete(*c.Controller.Users, user.Token)

	msg := core.ResponseData{
		Status:  http.StatusOK,
		Message: "Logged out.",
	}
	c.SendJSON(w, &msg, http.StatusOK)
}

func (c *SystemController) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	ok, user := c.TryGetUser(w, r)
	if !ok {
		c.HandleUnauthorizedError(errors.New("User not found"), w)
		return
	}

	if !user.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	users := core.Users{}
	paging := c.GetPaging(r.URL.Query())

	db := c.ormDB
	if val, ok := r.URL.Query()["search"]; ok && len(val) > 0 && val[0] != "" {
		search := "%" + val[0] + "%"
		db = db.Where("username LIKE ?", search)
	}

	db.Limit(paging.Limit).Offset(paging.Offset).Find(&users)
	db.Model(&core.User{}).Count(&paging.TotalCount)

	c.SendJSONPaging(w, r, paging, &users, http.StatusOK)
}

func (c *SystemController) SaveUserHandler(w http.ResponseWriter, r *http.Request) {
	ok, actingUser := c.GetUser(w, r)
	if !ok {
		return
	}
	if !actingUser.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	user := core.User{}
	if err := c.GetContent(&user, r); err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	if !user.Validate(c.ormDB) {
		c.SendErrors(w, user.Errors, http.StatusBadRequest)
		return
	}

	if user.ID == 0 {
		user.CreatedBy = actingUser.ID
	}
	if _, err := user.Save(c.ormDB); err != nil {
		c.HandleError(err, w)
		return
	}

	c.SendJSON(w, &user, http.StatusOK)
}

func (c *SystemController) LockUserHandler(w http.ResponseWriter, r *http.Request) {
	c.setUserActive(w, r, false)
}

func (c *SystemController) UnlockUserHandler(w http.ResponseWriter, r *http.Request) {
	c.setUserActive(w, r, true)
}

func (c *SystemController) setUserActive(w http.ResponseWriter, r *http.Request, isActive bool) {
	ok, actingUser := c.GetUser(w, r)
	if !ok {
		return
	}
	if !actingUser.IsSysadmin {
		c.HandlePermissionError(errors.New("No permission to call this route"), w)
		return
	}

	user := core.User{}
	if err := c.GetContent(&user, r); err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	c.ormDB.Model(&core.User{}).Where("id = ?", user.ID).Update("is_active", isActive)
	if !isActive {
		// kill live sessions of the locked account
		for token, sessionUser := range *c.Controller.Users {
			if sessionUser.ID == user.ID {
				delete(*c.Controller.Users, token)
			}
		}
		c.ormDB.Where("account_id = ?", user.ID).Delete(&SystemAccountsSession{})
	}

	msg := core.ResponseData{
		Status:  http.StatusOK,
		Message: "Saved.",
	}
	c.SendJSON(w, &msg, http.StatusOK)
}
