package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

var MainRouter string
var DSN string
var DbKind string
var Dbname string
var SqlitePath string
var LarkDomain string
var LarkAppID string
var LarkAppSecret string
var TPAppToken string
var TPTableID string
var TCGAppToken string
var TCGTableID string
var JiraServer string
var JiraToken string
var SyncInterval int
var MainConfig Config

type Config struct {
	XMLName       xml.Name `xml:"config"`
	MainRouter    string   `xml:"MainRouter"`
	DbKind        string   `xml:"DbKind"` // sqlite 或 postgres
	Dbname        string   `xml:"dbname"`
	Host          string   `xml:"host"`
	Port          string   `xml:"port"`
	Username      string   `xml:"user"`
	Password      string   `xml:"password"`
	SqlitePath    string   `xml:"SqlitePath"`
	LarkDomain    string   `xml:"LarkDomain"`
	LarkAppID     string   `xml:"LarkAppID"`
	LarkAppSecret string   `xml:"LarkAppSecret"`
	TPAppToken    string   `xml:"TPAppToken"`
	TPTableID     string   `xml:"TPTableID"`
	TCGAppToken   string   `xml:"TCGAppToken"`
	TCGTableID    string   `xml:"TCGTableID"`
	JiraServer    string   `xml:"JiraServer"`
	JiraToken     string   `xml:"JiraToken"`
	SyncInterval  int      `xml:"SyncInterval"` // 同步间隔（分钟）
}

func init() {

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		return
	}
	MainRouter = MainConfig.MainRouter
	DbKind = MainConfig.DbKind
	Dbname = MainConfig.Dbname
	SqlitePath = MainConfig.SqlitePath
	if SqlitePath == "" {
		SqlitePath = "tpboard.db"
	}
	LarkDomain = MainConfig.LarkDomain
	if LarkDomain == "" {
		LarkDomain = "https://open.larksuite.com"
	}
	LarkAppID = MainConfig.LarkAppID
	LarkAppSecret = MainConfig.LarkAppSecret
	TPAppToken = MainConfig.TPAppToken
	TPTableID = MainConfig.TPTableID
	TCGAppToken = MainConfig.TCGAppToken
	TCGTableID = MainConfig.TCGTableID
	JiraServer = MainConfig.JiraServer
	JiraToken = MainConfig.JiraToken
	SyncInterval = MainConfig.SyncInterval
	if SyncInterval <= 0 {
		SyncInterval = 15
	}

	DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", MainConfig.Host, MainConfig.Username, MainConfig.Password, MainConfig.Dbname, MainConfig.Port)

}
