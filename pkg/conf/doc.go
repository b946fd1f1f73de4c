/*
Package conf extends kingpin to provide:
- environment parsing with predefined prefix (PERFSWEEP_),
- loading environment from an env file before parsing,
- config dump as sourceable shell script,
- ability to extract current values of registered flags (defined with wrappers),
- new types of flags e.g. SliceFlag,
- predefined flags for logging (logrus integration).
*/
package conf
