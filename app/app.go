package app

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"gopkg.in/yaml.v2"
)

var (
	http_address         = flag.String("http-address", "0.0.0.0", "Listening address for http connections")
	http_port            = flag.Int("http-port", 4020, "Listening port for http connections")
	http_use_tls         = flag.Bool("http-use-tls", false, "Use TLS for http connections")
	http_tls_certificate = flag.String("http-tls-certificate", "server.crt", "Certificate file for tls")
	http_tls_key         = flag.String("http-tls-key", "server.key", "Private key file for tls")
	http_timeout         = flag.Int("http-timeout", 120, "Timeout for http requests in seconds")

	log *logrus.Logger
)

type App struct {
	Environment string
	Config      *Config
	ListenAddr  string
	ListenPort  int
	Router      *mux.Router
	Http        *http.Server
	Negroni     *negroni.Negroni
	Logger      *logrus.Logger
	Database    *Database

	EnableHttp bool
	UseTLS     bool
}

type Database struct {
	*sqlx.DB
	Logger *logrus.Logger
}

type Criteria interface{}

//Criteria fields of this type request an IS NULL clause instead of an equality
type EntityIsNull bool

//Field types may implement this to take over their own clause building
type CriteriaParser interface {
	ParseCriteria(sb *squirrel.SelectBuilder) error
}

func (db *Database) ParseCriteria(sb *squirrel.SelectBuilder, c Criteria) {
	c_value := reflect.ValueOf(c)
	typeOfT := c_value.Type()
	for i := 0; i < c_value.NumField(); i++ {
		f := c_value.Field(i)
		//Check if custom parsing is implemented
		v, ok := (f.Interface()).(CriteriaParser)
		if ok {
			if err := v.ParseCriteria(sb); err != nil {
				panic(err)
			}

		} else {
			if !f.IsZero() && f.Kind() != reflect.Struct && f.Kind() != reflect.Slice {
				ft := typeOfT.Field(i)
				switch ft.Name {
				case "Limit":
					*sb = sb.Limit(uint64(f.Interface().(int)))
				case "Offset":
					*sb = sb.Offset(uint64(f.Interface().(int)))
				case "OrderBy":
					*sb = sb.OrderBy(f.Interface().(string))
				default:
					tag, ok := ft.Tag.Lookup("db")
					if ok {

						switch f.Type() {
						case reflect.TypeOf(EntityIsNull(false)):
							if f.Bool() == true {
								*sb = sb.Where(squirrel.Eq{tag: nil})
							}
						default:
							db.Logger.Tracef("%d: %s %s = %v -> %s\n", i,
								ft.Name, f.Type(), f.Interface(), ft.Tag.Get("db"))
							*sb = sb.Where(squirrel.Eq{tag: f.Interface()})

						}
					}
				}
			}
		}

	}
}

func (db *Database) Match(dst interface{}, table string, criteria Criteria) error {
	sb := squirrel.Select("*").From(table)
	db.ParseCriteria(&sb, criteria)

	query, args, err := sb.ToSql()
	if err != nil {
		return err
	}

	db.Logger.WithField("sql", "match").Tracef("Executing %s\n", query)

	return db.Select(dst, query, args...)

}

func (db *Database) MatchOne(dst interface{}, table string, criteria Criteria) error {
	sb := squirrel.Select("*").From(table)
	db.ParseCriteria(&sb, criteria)

	query, args, err := sb.ToSql()
	if err != nil {
		return err
	}

	db.Logger.WithField("sql", "matchone").Tracef("Executing %s\n", query)

	return db.Get(dst, query, args...)

}

func (db *Database) Insert(entity interface{}, table string) error {
	ignored_fields := map[string]bool{}
	query, args, err := squirrel.Insert(table).SetMap(structToQueryMap(entity, ignored_fields)).ToSql()
	if err != nil {
		return err
	}
	db.Logger.WithField("sql", "insert").Tracef("Executing %s with args %v\n", query, args)

	result, err := db.Exec(query, args...)
	if err != nil {
		return err
	}

	last_id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	_, ok := t.FieldByName("Id")
	if !ok {
		return nil
	}

	values := reflect.ValueOf(entity)
	if values.Kind() == reflect.Ptr {
		values = values.Elem()
	}
	id := values.FieldByName("Id")
	id.SetUint(uint64(last_id))

	return nil
}

func (db *Database) Update(entity interface{}, table string) (int64, error) {
	values := reflect.ValueOf(entity)
	if values.Kind() == reflect.Ptr {
		values = values.Elem()
	}

	//Get Id
	id := values.FieldByName("Id").Uint()

	ignored_fields := map[string]bool{
		"Id": true,
	}

	query, args, err := squirrel.Update(table).
		Where(squirrel.Eq{"id": id}).
		SetMap(structToQueryMap(entity, ignored_fields)).ToSql()
	if err != nil {
		return 0, err
	}
	db.Logger.WithField("sql", "update").Tracef("Executing %s with args %v\n", query, args)

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()

}

func (db *Database) Delete(entity interface{}, table string) (int64, error) {
	values := reflect.ValueOf(entity)
	if values.Kind() == reflect.Ptr {
		values = values.Elem()
	}

	idValue := values.FieldByName("Id")
	if idValue.IsZero() {
		return 0, fmt.Errorf("Missing id for entity: %s", table)
	}

	id := idValue.Uint()

	query, args, err := squirrel.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	db.Logger.WithField("sql", "delete").Tracef("Executing %s with args %v\n", query, args)

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()

}

func structToQueryMap(s interface{}, ignore map[string]bool) map[string]interface{} {
	m := make(map[string]interface{})
	t := reflect.TypeOf(s)
	v := reflect.ValueOf(s)

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		tf := t.Field(i)
		tag := tf.Tag.Get("db")
		if len(tag) == 0 {
			continue
		}

		_, ignore := ignore[tf.Name]
		if ignore {
			continue
		}

		vf := v.FieldByName(tf.Name)

		if vf.Kind() == reflect.Interface {
			//Json encode structs
			data, err := json.Marshal(vf.Interface())
			if err != nil {
				panic(err)
			}

			m[tag] = data
		} else {
			m[tag] = vf.Interface()
		}
	}

	return m
}

type Config struct {
	LogLevel string        `yaml:"LogLevel"`
	Mysql    *string       `yaml:"Mysql"`
	Paging   *PagingConfig `yaml:"Paging"`
}

//Bounds for the paginated and capped reads. Zero values fall back to the
//documented defaults below.
type PagingConfig struct {
	DefaultPageSize    int `yaml:"DefaultPageSize"`
	MaxPageSize        int `yaml:"MaxPageSize"`
	DefaultLatestCount int `yaml:"DefaultLatestCount"`
	MaxLatestCount     int `yaml:"MaxLatestCount"`
}

const (
	DefaultPageSize    = 100
	MaxPageSize        = 500
	DefaultLatestCount = 100
	MaxLatestCount     = 500
)

func (c *Config) PagingDefaults() PagingConfig {
	paging := PagingConfig{}
	if c.Paging != nil {
		paging = *c.Paging
	}

	if paging.DefaultPageSize == 0 {
		paging.DefaultPageSize = DefaultPageSize
	}
	if paging.MaxPageSize == 0 {
		paging.MaxPageSize = MaxPageSize
	}
	if paging.DefaultLatestCount == 0 {
		paging.DefaultLatestCount = DefaultLatestCount
	}
	if paging.MaxLatestCount == 0 {
		paging.MaxLatestCount = MaxLatestCount
	}

	return paging
}

func New() *App {
	env := os.Getenv("DATASYSTEM_ENV")
	if env == "" {
		env = "dev"
	}

	log = logrus.New()

	log.Debugf("Running in environment: %s\n", env)
	config, err := LoadConfig(env)
	if err != nil {
		panic(err)
	}

	app := &App{
		Environment: env,
		Config:      config,
		ListenAddr:  *http_address,
		ListenPort:  *http_port,
		Router:      mux.NewRouter(),
		Logger:      log,
		EnableHttp:  false,
		UseTLS:      *http_use_tls,
	}

	app.Logger.Level, err = logrus.ParseLevel(config.LogLevel)
	if err != nil {
		panic(err)
	}

	log.Debugf("Using log level %s\n", app.Logger.Level.String())

	if config.Mysql != nil {
		app.ConnectMysql()
	}

	app.Negroni = negroni.New()

	return app
}

func LoadConfig(env string) (*Config, error) {
	config_file, err := os.Open(fmt.Sprintf("config/%s.yaml", env))
	if err != nil {
		return nil, err
	}

	var config Config

	if err := yaml.NewDecoder(config_file).Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil

}

func (app *App) Run() {

	app.Negroni.UseHandler(app.Router)

	log.Debugf("Running application\n")

	app.Http = &http.Server{
		Handler:      app.Negroni,
		Addr:         fmt.Sprintf("%s:%d", app.ListenAddr, app.ListenPort),
		WriteTimeout: time.Duration(*http_timeout) * time.Second,
		ReadTimeout:  time.Duration(*http_timeout) * time.Second,
	}
	if app.EnableHttp {
		if app.UseTLS {
			log.Fatal(app.Http.ListenAndServeTLS(*http_tls_certificate, *http_tls_key))
		} else {
			app.Logger.Debug("Listening for http connections")
			log.Fatal(app.Http.ListenAndServe())
		}

	} else {
		for {
			time.Sleep(time.Second * 60)
		}
	}

}

func (app *App) Use(h negroni.Handler) {
	app.Negroni.Use(h)
}

func (app *App) Get(path string, handler http.HandlerFunc) {
	app.EnableHttp = true
	app.Router.HandleFunc(path, handler).Methods("GET")
}

func (app *App) Post(path string, handler http.HandlerFunc) {
	app.EnableHttp = true
	app.Router.HandleFunc(path, handler).Methods("POST")

}

func (app *App) Put(path string, handler http.HandlerFunc) {
	app.EnableHttp = true
	app.Router.HandleFunc(path, handler).Methods("PUT")

}

func (app *App) Delete(path string, handler http.HandlerFunc) {
	app.EnableHttp = true
	app.Router.HandleFunc(path, handler).Methods("DELETE")

}

func (app *App) Handle(path string, handler http.Handler) {
	app.EnableHttp = true
	app.Router.Handle(path, handler)
}

func (app *App) ConnectMysql() {
	db, err := sqlx.Connect("mysql", *app.Config.Mysql)
	if err != nil {
		panic(err)
	}

	app.Database = &Database{db, app.Logger}

}

func (app *App) HttpInternalError(w http.ResponseWriter, err error) {
	app.HttpError(w, err, http.StatusInternalServerError)
}
func (app *App) HttpBadRequest(w http.ResponseWriter, err error) {
	app.HttpError(w, err, http.StatusBadRequest)
}

func (app *App) HttpUnauthorized(w http.ResponseWriter, err error) {
	app.HttpError(w, err, http.StatusUnauthorized)
}

func (app *App) HttpNotFound(w http.ResponseWriter, err error) {
	app.HttpError(w, err, http.StatusNotFound)
}

func (app *App) HttpNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) HttpError(w http.ResponseWriter, err interface{}, status int) {
	var error_string string

	switch v := err.(type) {
	case error:
		error_string = v.Error()
	case string:
		error_string = v
	case *string:
		error_string = *v
	default:
		error_string = "Unknown error"
	}

	http.Error(w, error_string, status)
}
