package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"

	"rvmtrack_backend/app/core"
	"rvmtrack_backend/app/importbundle"
	"rvmtrack_backend/app/inventorybundle"
	"rvmtrack_backend/app/systembundle"
)

var (
	ormDB *gorm.DB
	Users map[string]core.User
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("----")
	startServer()
	log.Println("----")
}

func initBundles(users *map[string]core.User) []core.Bundle {
	return []core.Bundle{
		systembundle.NewSystemBundle(ormDB, users),
		inventorybundle.NewInventoryBundle(ormDB, users),
		importbundle.NewImportBundle(ormDB, users),
	}
}

// Start with: rvmtrack_backend -configFile=/var/rvmtrack/config.json
func startServer() error {
	configFile := ""
	flag.StringVar(&configFile, "configFile", "config.json", "a string")
	flag.Parse()
	log.Println("using configfile: ", configFile)

	file, _ := os.Open(configFile)
	decoder := json.NewDecoder(file)
	core.Config = core.Configuration{}
	if err := decoder.Decode(&core.Config); err != nil {
		log.Println("error: ", err)
	}

	core.GetEnvironmentConfig(&core.Config)

	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", core.Config.Database.User, core.Config.Database.Password, core.Config.Database.Host, core.Config.Database.Port, core.Config.Database.Database)
	log.Print("connecting to database... ")
	ormdb, err := gorm.Open("mysql", dataSourceName)
	for err != nil {
		log.Println(err)
		time.Sleep(3 * time.Second)
		ormdb, err = gorm.Open("mysql", dataSourceName)
	}
	log.Println("done")

	ormdb.Exec("SET NAMES utf8")
	ormdb.Exec("SET time_zone = \"+00:00\"")
	ormdb.Exec("SET @@session.time_zone = \"+00:00\"")
	ormDB = ormdb
	ormDB.LogMode(core.Config.Database.Debug)

	Users = make(map[string]core.User)

	accountsSessions := systembundle.SystemAccountsSessions{}
	ormdb.Preload("Account").Find(&accountsSessions)

	log.Print("reading account sessions tokens... ")
	for _, session := range accountsSessions {
		session.Account.Token = session.SessionToken
		Users[session.SessionToken] = session.Account
	}
	log.Println("done")

	r := mux.NewRouter()
	s := r.Host(core.Config.Server.Hostname).PathPrefix("/api/v1/").Subrouter()

	log.Print("Adding routes... ")
	for _, b := range initBundles(&Users) {
		for _, route := range b.GetRoutes() {
			s.Handle(route.Path, middleWare(route.Handler)).Methods(route.Method)
		}
	}
	log.Println("done")

	address := fmt.Sprintf(":%d", core.Config.Server.InternalPort)
	log.Println(address)

	if core.Config.Server.WithSSL {
		log.Fatal(http.ListenAndServeTLS(address, core.Config.Server.SSLCertFile, core.Config.Server.SSLKeyFile, r))
	} else {
		log.Fatal(http.ListenAndServe(address, r))
	}

	return nil
}

// isPublicRoute lists the endpoints reachable without a session token.
// Websocket connections authenticate through their one-time ticket instead.
func isPublicRoute(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	if r.RequestURI == "/api/v1/system/login" {
		return true
	}
	return strings.Contains(r.RequestURI, "/api/v1/ws/")
}

func middleWare(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		user := core.User{}
		ok := false
		var userId uint = 0
		tmp := strings.Split(auth, " ")
		if len(tmp) == 2 {
			if user, ok = Users[tmp[1]]; ok {
				userId = user.ID
			}
		}

		if userId == 0 && !isPublicRoute(r) {
			w.Header().Add("Content-Type", "application/json")
			w.Header().Add("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusUnauthorized)
			msg := core.ResponseData{
				Status:  997,
				Message: "You are not authorized, please login!",
			}
			b, _ := json.Marshal(msg)
			io.WriteString(w, string(b))
			return
		}

		if userId > 0 && !user.IsActive {
			w.Header().Add("Content-Type", "application/json")
			w.Header().Add("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusUnauthorized)
			msg := core.ResponseData{
				Status:  core.Account_Locked,
				Message: "Account locked",
			}
			b, _ := json.Marshal(msg)
			io.WriteString(w, string(b))
			return
		}

		sqlCmd := `INSERT INTO system_log (user_id, log_type, log_date, log_title, log_text) VALUES (?, ?, NOW(), ?, ?)`
		if _, err := ormDB.DB().Exec(sqlCmd, userId, 1, "open Route", r.Header.Get("Client")+" "+r.Method+" "+r.RequestURI); err != nil {
			log.Println(err)
		}

		h.ServeHTTP(w, r)
	})
}
