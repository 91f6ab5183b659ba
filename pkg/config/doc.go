/*
Package config loads and validates the sentinel's YAML configuration.

Configuration is read once per run from config.yaml next to the executable
(or the path given with --config) and is immutable for the run's duration.
Failures fall into three errors.Is-distinguishable classes, all fatal before
any directory is checked:

  - ErrNotFound: the file does not exist
  - ErrMalformed: the file is not valid YAML
  - ErrInvalid: the document parsed but required fields are missing or wrong

A .env file in the working directory is applied before loading, and
SENTINEL_SMTP_USERNAME / SENTINEL_SMTP_PASSWORD override the file's SMTP
credentials so secrets can stay out of version-controlled YAML.

Example document:

	smtp:
	  host: smtp.example.com
	  port: 465
	  username: watchdog
	  password: secret
	  sender: watchdog@example.com
	  recipients:
	    - ops@example.com
	report_paths:
	  - /srv/reports/tpt
	  - /srv/reports/positions
	recovery:
	  script: /opt/tpt-downloader/main.py
	  timeout: 5m
	metrics:
	  textfile: /var/lib/node_exporter/sentinel.prom
	log:
	  level: info
	  json: true
*/
package config
